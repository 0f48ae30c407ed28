package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository reads the chart of accounts. The posting engine
// never writes this table.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, tenant_id, code, name, account_type, account_level,
	parent_id, is_control_account, required_subsidiary_type_id, is_active
`

// FindAccountByID retrieves an account scoped to a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID int64, accountID int64) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`,
		tenantID, accountID)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple tenant accounts keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID int64, accountIDs []int64) (map[int64]domain.Account, error) {
	result := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`,
		tenantID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		result[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return result, nil
}

// ListAccounts retrieves the tenant's full chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID int64) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 ORDER BY code;`,
		tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.TenantID,
		&a.Code,
		&a.Name,
		&a.AccountType,
		&a.AccountLevel,
		&a.ParentID,
		&a.IsControlAccount,
		&a.RequiredSubsidiaryTypeID,
		&a.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
