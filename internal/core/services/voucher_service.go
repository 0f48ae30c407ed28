package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
	"github.com/acctsys/accounting_backend/internal/dto"
	"github.com/acctsys/accounting_backend/internal/utils/money"
)

// voucherService is the workflow engine: the only writer of voucher state.
type voucherService struct {
	BaseService
	voucherRepo    portsrepo.VoucherRepositoryFacade
	accountRepo    portsrepo.AccountRepository
	subsidiaryRepo portsrepo.SubsidiaryRepository
	branchRepo     portsrepo.BranchRepository
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryFacade,
	accountRepo portsrepo.AccountRepository,
	subsidiaryRepo portsrepo.SubsidiaryRepository,
	branchRepo portsrepo.BranchRepository,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:    voucherRepo,
		accountRepo:    accountRepo,
		subsidiaryRepo: subsidiaryRepo,
		branchRepo:     branchRepo,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// buildDetails converts and validates the request lines. It enforces the
// balance invariant (sum of debits equals sum of credits, exact integer
// equality) and the subsidiary-ledger requirement of every account posted to.
func (s *voucherService) buildDetails(ctx context.Context, tenantID int64, lines []dto.VoucherDetailRequest) ([]domain.VoucherDetail, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: voucher must have at least one detail line", apperrors.ErrValidation)
	}

	details := make([]domain.VoucherDetail, len(lines))
	accountIDs := make([]int64, 0, len(lines))
	subsidiaryIDs := make([]int64, 0)
	var debitSum, creditSum domain.Money

	for i, line := range lines {
		debit, err := money.FromDecimal(line.DebitAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: debit amount for account %d: %v", apperrors.ErrValidation, line.AccountID, err)
		}
		credit, err := money.FromDecimal(line.CreditAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: credit amount for account %d: %v", apperrors.ErrValidation, line.AccountID, err)
		}
		if debit.IsNegative() || credit.IsNegative() {
			return nil, fmt.Errorf("%w: amounts must be non-negative for account %d", apperrors.ErrValidation, line.AccountID)
		}
		if !debit.IsZero() && !credit.IsZero() {
			return nil, fmt.Errorf("%w: line for account %d carries both a debit and a credit", apperrors.ErrValidation, line.AccountID)
		}

		debitSum = debitSum.Add(debit)
		creditSum = creditSum.Add(credit)

		details[i] = domain.VoucherDetail{
			AccountID:          line.AccountID,
			SubsidiaryLedgerID: line.SubsidiaryLedgerID,
			DebitAmount:        debit,
			CreditAmount:       credit,
			LineNarration:      line.LineNarration,
		}
		accountIDs = append(accountIDs, line.AccountID)
		if line.SubsidiaryLedgerID != nil {
			subsidiaryIDs = append(subsidiaryIDs, *line.SubsidiaryLedgerID)
		}
	}

	if debitSum != creditSum {
		return nil, fmt.Errorf("%w: debit total %s does not match credit total %s",
			apperrors.ErrValidation, money.Format(debitSum), money.Format(creditSum))
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, uniqueInt64s(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	var subsidiaries map[int64]domain.SubsidiaryLedger
	if len(subsidiaryIDs) > 0 {
		subsidiaries, err = s.subsidiaryRepo.FindSubsidiaryLedgersByIDs(ctx, tenantID, uniqueInt64s(subsidiaryIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch subsidiary ledgers: %w", err)
		}
	}

	for _, d := range details {
		acc, found := accounts[d.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, d.AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %d is inactive", apperrors.ErrValidation, d.AccountID)
		}
		if acc.RequiredSubsidiaryTypeID != nil {
			if d.SubsidiaryLedgerID == nil {
				return nil, fmt.Errorf("%w: account %s requires a subsidiary ledger of type %d",
					apperrors.ErrValidation, acc.Code, *acc.RequiredSubsidiaryTypeID)
			}
			sub, found := subsidiaries[*d.SubsidiaryLedgerID]
			if !found {
				return nil, fmt.Errorf("%w: subsidiary ledger %d", apperrors.ErrNotFound, *d.SubsidiaryLedgerID)
			}
			if sub.SubsidiaryTypeID != *acc.RequiredSubsidiaryTypeID {
				return nil, fmt.Errorf("%w: subsidiary ledger %d has type %d, account %s requires type %d",
					apperrors.ErrValidation, sub.SubsidiaryLedgerID, sub.SubsidiaryTypeID, acc.Code, *acc.RequiredSubsidiaryTypeID)
			}
		}
	}

	return details, nil
}

// CreateVoucher validates the request and persists a new DRAFT voucher with
// its creation log entry.
func (s *voucherService) CreateVoucher(ctx context.Context, tenantID int64, req dto.CreateVoucherRequest, actor string) (*domain.Voucher, error) {
	details, err := s.buildDetails(ctx, tenantID, req.Details)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, tenantID, req.BranchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, req.BranchID)
		}
		return nil, fmt.Errorf("failed to fetch branch %d: %w", req.BranchID, err)
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		TenantID:      tenantID,
		Date:          req.Date.UTC(),
		ReferenceNo:   req.ReferenceNo,
		Narration:     req.Narration,
		VoucherType:   req.VoucherType,
		Status:        domain.Draft,
		BranchID:      branch.BranchID,
		AttachmentRef: req.AttachmentRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
		Details: details,
	}

	numberPrefix := fmt.Sprintf("%s-%s-%04d", voucher.VoucherType, branch.Code, voucher.Date.Year())
	log := domain.VoucherWorkflowLog{
		FromStatus: domain.Draft,
		ToStatus:   domain.Draft,
		ActionBy:   actor,
		ActionAt:   now,
		Comment:    "Created",
	}

	if err := s.voucherRepo.CreateVoucher(ctx, &voucher, numberPrefix, log); err != nil {
		s.LogError(ctx, err, "Failed to save voucher", slog.Int64("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	s.LogInfo(ctx, "Voucher created",
		slog.Int64("voucher_id", voucher.VoucherID),
		slog.String("voucher_no", voucher.VoucherNo),
		slog.Int64("tenant_id", tenantID))
	return &voucher, nil
}

// UpdateVoucher replaces the header and the full detail line set of a DRAFT
// voucher. Vouchers in any other status are immutable.
func (s *voucherService) UpdateVoucher(ctx context.Context, tenantID int64, voucherID int64, req dto.CreateVoucherRequest, actor string) (*domain.Voucher, error) {
	existing, err := s.fetchTenantVoucher(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.Draft {
		return nil, fmt.Errorf("%w: voucher %d is %s, only DRAFT vouchers can be edited",
			apperrors.ErrInvalidState, voucherID, existing.Status)
	}

	details, err := s.buildDetails(ctx, tenantID, req.Details)
	if err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindBranchByID(ctx, tenantID, req.BranchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, req.BranchID)
		}
		return nil, fmt.Errorf("failed to fetch branch %d: %w", req.BranchID, err)
	}

	now := time.Now().UTC()
	updated := *existing
	updated.Date = req.Date.UTC()
	updated.ReferenceNo = req.ReferenceNo
	updated.Narration = req.Narration
	updated.VoucherType = req.VoucherType
	updated.BranchID = req.BranchID
	updated.AttachmentRef = req.AttachmentRef
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor
	updated.Details = details

	log := domain.VoucherWorkflowLog{
		VoucherID:  voucherID,
		FromStatus: existing.Status,
		ToStatus:   existing.Status,
		ActionBy:   actor,
		ActionAt:   now,
		Comment:    "Updated",
	}

	if err := s.voucherRepo.UpdateVoucherDraft(ctx, &updated, log); err != nil {
		s.LogError(ctx, err, "Failed to update voucher", slog.Int64("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to update voucher %d: %w", voucherID, err)
	}

	s.LogInfo(ctx, "Voucher updated", slog.Int64("voucher_id", voucherID))
	return &updated, nil
}

// VerifyVoucher moves a DRAFT voucher to VERIFIED.
func (s *voucherService) VerifyVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string) (*domain.Voucher, error) {
	return s.transition(ctx, tenantID, voucherID, domain.Verified, actor, "Verified")
}

// ApproveVoucher moves a VERIFIED voucher to APPROVED. This is the sole
// gate on financial reporting: only from here on do the voucher's lines
// contribute to any report.
func (s *voucherService) ApproveVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string) (*domain.Voucher, error) {
	return s.transition(ctx, tenantID, voucherID, domain.Approved, actor, "Approved")
}

// RejectVoucher moves a non-terminal voucher to REJECTED. The comment is
// mandatory: a rejection without a reason is useless to the audit trail.
func (s *voucherService) RejectVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string, comment string) (*domain.Voucher, error) {
	if comment == "" {
		return nil, fmt.Errorf("%w: rejection requires a comment", apperrors.ErrValidation)
	}
	return s.transition(ctx, tenantID, voucherID, domain.Rejected, actor, comment)
}

// transition performs one workflow step. The repository applies the status
// change as a compare-and-set against the status read here, so of two
// concurrent attempts exactly one succeeds and the other surfaces
// ErrInvalidState against the already-updated status.
func (s *voucherService) transition(ctx context.Context, tenantID int64, voucherID int64, target domain.VoucherStatus, actor string, comment string) (*domain.Voucher, error) {
	voucher, err := s.fetchTenantVoucher(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: voucher %d is %s, cannot move to %s",
			apperrors.ErrInvalidState, voucherID, voucher.Status, target)
	}

	t := portsrepo.StatusTransition{
		VoucherID: voucherID,
		From:      voucher.Status,
		To:        target,
		ActionBy:  actor,
		ActionAt:  time.Now().UTC(),
		Comment:   comment,
	}
	if err := s.voucherRepo.TransitionStatus(ctx, tenantID, t); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to transition voucher",
				slog.Int64("voucher_id", voucherID),
				slog.String("target_status", string(target)))
		}
		return nil, err
	}

	updated, err := s.voucherRepo.GetByIDWithDetails(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload voucher %d after transition: %w", voucherID, err)
	}

	s.LogInfo(ctx, "Voucher transitioned",
		slog.Int64("voucher_id", voucherID),
		slog.String("from_status", string(t.From)),
		slog.String("to_status", string(target)))
	return updated, nil
}

// GetVoucherByID retrieves a voucher with its detail lines.
func (s *voucherService) GetVoucherByID(ctx context.Context, tenantID int64, voucherID int64) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.GetByIDWithDetails(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.TenantID != tenantID {
		// Obscure existence across tenants
		return nil, fmt.Errorf("%w: voucher %d", apperrors.ErrNotFound, voucherID)
	}
	return voucher, nil
}

// ListVouchers retrieves a paginated page of the tenant's vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, tenantID int64, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchersByTenant(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers", slog.Int64("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve vouchers: %w", err)
	}

	return &dto.ListVouchersResponse{
		Vouchers:  dto.ToVoucherResponses(vouchers),
		NextToken: nextToken,
	}, nil
}

// GetWorkflowLog retrieves the transition history of a voucher.
func (s *voucherService) GetWorkflowLog(ctx context.Context, tenantID int64, voucherID int64) ([]domain.VoucherWorkflowLog, error) {
	if _, err := s.fetchTenantVoucher(ctx, tenantID, voucherID); err != nil {
		return nil, err
	}
	return s.voucherRepo.ListWorkflowLogs(ctx, voucherID)
}

// fetchTenantVoucher loads a voucher header and checks tenant ownership.
func (s *voucherService) fetchTenantVoucher(ctx context.Context, tenantID int64, voucherID int64) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.TenantID != tenantID {
		return nil, fmt.Errorf("%w: voucher %d", apperrors.ErrNotFound, voucherID)
	}
	return voucher, nil
}

// uniqueInt64s returns a slice containing only the unique values from the input.
func uniqueInt64s(input []int64) []int64 {
	seen := make(map[int64]struct{}, len(input))
	result := make([]int64, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
