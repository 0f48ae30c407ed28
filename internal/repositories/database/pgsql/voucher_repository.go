package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	"github.com/acctsys/accounting_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxVoucherRepository persists vouchers, their detail lines, and the
// append-only workflow log. Every write couples the voucher change with
// its log entry inside one database transaction, so a reader can never
// observe a status without its audit record.
type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherColumns = `
	voucher_id, tenant_id, voucher_date, voucher_no, reference_no, narration,
	voucher_type, status, branch_id, attachment_ref,
	created_at, created_by, last_updated_at, last_updated_by,
	verified_by, verified_at, approved_by, approved_at
`

// CreateVoucher inserts the voucher, its detail lines, and the creation
// log entry atomically, allocating the next voucher number for the prefix.
func (r *PgxVoucherRepository) CreateVoucher(ctx context.Context, voucher *domain.Voucher, numberPrefix string, log domain.VoucherWorkflowLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Allocate the next number in the per-(tenant, prefix) sequence.
	// The upsert serializes concurrent allocations on the sequence row.
	var seq int64
	err = tx.QueryRow(ctx, `
		INSERT INTO voucher_sequences (tenant_id, prefix, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, prefix)
		DO UPDATE SET last_value = voucher_sequences.last_value + 1
		RETURNING last_value;
	`, voucher.TenantID, numberPrefix).Scan(&seq)
	if err != nil {
		return apperrors.NewAppError(500, "failed to allocate voucher number", err)
	}
	voucher.VoucherNo = fmt.Sprintf("%s-%06d", numberPrefix, seq)

	err = tx.QueryRow(ctx, `
		INSERT INTO vouchers (
			tenant_id, voucher_date, voucher_no, reference_no, narration,
			voucher_type, status, branch_id, attachment_ref,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING voucher_id;
	`,
		voucher.TenantID,
		voucher.Date,
		voucher.VoucherNo,
		voucher.ReferenceNo,
		voucher.Narration,
		voucher.VoucherType,
		voucher.Status,
		voucher.BranchID,
		voucher.AttachmentRef,
		voucher.CreatedAt,
		voucher.CreatedBy,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	).Scan(&voucher.VoucherID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: voucher number %s", apperrors.ErrDuplicate, voucher.VoucherNo)
		}
		return apperrors.NewAppError(500, "failed to insert voucher "+voucher.VoucherNo, err)
	}

	if err := r.insertDetails(ctx, tx, voucher.VoucherID, voucher.Details); err != nil {
		return err
	}

	log.VoucherID = voucher.VoucherID
	if err := r.insertWorkflowLog(ctx, tx, log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucherDraft replaces the header and the full detail set of a
// DRAFT voucher (delete-then-insert, not incremental diff) and appends the
// update log entry, all in one transaction. The status guard in the WHERE
// clause makes a concurrent transition fail this update cleanly.
func (r *PgxVoucherRepository) UpdateVoucherDraft(ctx context.Context, voucher *domain.Voucher, log domain.VoucherWorkflowLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE vouchers
		SET voucher_date = $1, reference_no = $2, narration = $3,
			voucher_type = $4, branch_id = $5, attachment_ref = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE voucher_id = $9 AND status = $10;
	`,
		voucher.Date,
		voucher.ReferenceNo,
		voucher.Narration,
		voucher.VoucherType,
		voucher.BranchID,
		voucher.AttachmentRef,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
		voucher.VoucherID,
		domain.Draft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return r.concurrentStateError(ctx, tx, voucher.VoucherID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_details WHERE voucher_id = $1;`, voucher.VoucherID); err != nil {
		return apperrors.NewAppError(500, "failed to clear voucher details", err)
	}
	if err := r.insertDetails(ctx, tx, voucher.VoucherID, voucher.Details); err != nil {
		return err
	}

	if err := r.insertWorkflowLog(ctx, tx, log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// TransitionStatus applies one workflow step as a compare-and-set: the
// update only lands if the row still carries the expected from-status.
// The losing side of a concurrent race gets ErrInvalidState with the
// status that actually won.
func (r *PgxVoucherRepository) TransitionStatus(ctx context.Context, tenantID int64, t portsrepo.StatusTransition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var tag pgconn.CommandTag
	switch t.To {
	case domain.Verified:
		tag, err = tx.Exec(ctx, `
			UPDATE vouchers
			SET status = $1, verified_by = $2, verified_at = $3,
				last_updated_at = $3, last_updated_by = $2
			WHERE voucher_id = $4 AND tenant_id = $5 AND status = $6;
		`, t.To, t.ActionBy, t.ActionAt, t.VoucherID, tenantID, t.From)
	case domain.Approved:
		tag, err = tx.Exec(ctx, `
			UPDATE vouchers
			SET status = $1, approved_by = $2, approved_at = $3,
				last_updated_at = $3, last_updated_by = $2
			WHERE voucher_id = $4 AND tenant_id = $5 AND status = $6;
		`, t.To, t.ActionBy, t.ActionAt, t.VoucherID, tenantID, t.From)
	default:
		tag, err = tx.Exec(ctx, `
			UPDATE vouchers
			SET status = $1, last_updated_at = $3, last_updated_by = $2
			WHERE voucher_id = $4 AND tenant_id = $5 AND status = $6;
		`, t.To, t.ActionBy, t.ActionAt, t.VoucherID, tenantID, t.From)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition voucher status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.concurrentStateError(ctx, tx, t.VoucherID)
	}

	log := domain.VoucherWorkflowLog{
		VoucherID:  t.VoucherID,
		FromStatus: t.From,
		ToStatus:   t.To,
		ActionBy:   t.ActionBy,
		ActionAt:   t.ActionAt,
		Comment:    t.Comment,
	}
	if err := r.insertWorkflowLog(ctx, tx, log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// concurrentStateError reports why a guarded write matched no row: either
// the voucher is gone, or another caller changed its status first.
func (r *PgxVoucherRepository) concurrentStateError(ctx context.Context, tx pgx.Tx, voucherID int64) error {
	var current domain.VoucherStatus
	err := tx.QueryRow(ctx, `SELECT status FROM vouchers WHERE voucher_id = $1;`, voucherID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: voucher %d", apperrors.ErrNotFound, voucherID)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read voucher status", err)
	}
	return fmt.Errorf("%w: voucher %d is now %s", apperrors.ErrInvalidState, voucherID, current)
}

func (r *PgxVoucherRepository) insertDetails(ctx context.Context, tx pgx.Tx, voucherID int64, details []domain.VoucherDetail) error {
	for i := range details {
		details[i].VoucherID = voucherID
		err := tx.QueryRow(ctx, `
			INSERT INTO voucher_details (
				voucher_id, line_no, account_id, subsidiary_ledger_id,
				debit_amount, credit_amount, line_narration
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING voucher_detail_id;
		`,
			voucherID,
			i+1,
			details[i].AccountID,
			details[i].SubsidiaryLedgerID,
			int64(details[i].DebitAmount),
			int64(details[i].CreditAmount),
			details[i].LineNarration,
		).Scan(&details[i].VoucherDetailID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert voucher detail", err)
		}
	}
	return nil
}

func (r *PgxVoucherRepository) insertWorkflowLog(ctx context.Context, tx pgx.Tx, log domain.VoucherWorkflowLog) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO voucher_workflow_logs (voucher_id, from_status, to_status, action_by, action_at, comment)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, log.VoucherID, log.FromStatus, log.ToStatus, log.ActionBy, log.ActionAt, log.Comment)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert workflow log", err)
	}
	return nil
}

// FindVoucherByID retrieves a voucher header without detail lines.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID int64) (*domain.Voucher, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = $1;`, voucherID)
	voucher, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: voucher %d", apperrors.ErrNotFound, voucherID)
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher", err)
	}
	return voucher, nil
}

// GetByIDWithDetails retrieves a voucher with its detail lines in posting
// order.
func (r *PgxVoucherRepository) GetByIDWithDetails(ctx context.Context, voucherID int64) (*domain.Voucher, error) {
	voucher, err := r.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT voucher_detail_id, voucher_id, account_id, subsidiary_ledger_id,
			debit_amount, credit_amount, line_narration
		FROM voucher_details
		WHERE voucher_id = $1
		ORDER BY line_no;
	`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query voucher details", err)
	}
	defer rows.Close()

	var details []domain.VoucherDetail
	for rows.Next() {
		var d domain.VoucherDetail
		var debit, credit int64
		if err := rows.Scan(&d.VoucherDetailID, &d.VoucherID, &d.AccountID, &d.SubsidiaryLedgerID, &debit, &credit, &d.LineNarration); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher detail", err)
		}
		d.DebitAmount = domain.Money(debit)
		d.CreditAmount = domain.Money(credit)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate voucher details", err)
	}

	voucher.Details = details
	return voucher, nil
}

// ListVouchersByTenant retrieves a page of voucher headers, newest first,
// using (created_at, voucher_id) token pagination.
func (r *PgxVoucherRepository) ListVouchersByTenant(ctx context.Context, tenantID int64, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := []any{tenantID}
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE tenant_id = $1`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, voucher_id) < ($2, $3)`
		args = append(args, cursorCreatedAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, voucher_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list vouchers", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher", err)
		}
		vouchers = append(vouchers, *voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate vouchers", err)
	}

	var token *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[len(vouchers)-1]
		encoded := pagination.EncodeMultiFieldToken(
			last.CreatedAt.Format(time.RFC3339Nano),
			strconv.FormatInt(last.VoucherID, 10),
		)
		token = &encoded
	}

	return vouchers, token, nil
}

// ListWorkflowLogs retrieves the voucher's transition history in insertion
// order.
func (r *PgxVoucherRepository) ListWorkflowLogs(ctx context.Context, voucherID int64) ([]domain.VoucherWorkflowLog, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT log_id, voucher_id, from_status, to_status, action_by, action_at, comment
		FROM voucher_workflow_logs
		WHERE voucher_id = $1
		ORDER BY log_id;
	`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workflow logs", err)
	}
	defer rows.Close()

	var logs []domain.VoucherWorkflowLog
	for rows.Next() {
		var l domain.VoucherWorkflowLog
		if err := rows.Scan(&l.LogID, &l.VoucherID, &l.FromStatus, &l.ToStatus, &l.ActionBy, &l.ActionAt, &l.Comment); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workflow log", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate workflow logs", err)
	}
	return logs, nil
}

// scanVoucher maps one voucher row. Works for both QueryRow and Query
// iteration since pgx.Row and pgx.Rows share Scan.
func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID,
		&v.TenantID,
		&v.Date,
		&v.VoucherNo,
		&v.ReferenceNo,
		&v.Narration,
		&v.VoucherType,
		&v.Status,
		&v.BranchID,
		&v.AttachmentRef,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
		&v.VerifiedBy,
		&v.VerifiedAt,
		&v.ApprovedBy,
		&v.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
