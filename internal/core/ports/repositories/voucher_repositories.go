package repositories

import (
	"context"
	"time"

	"github.com/acctsys/accounting_backend/internal/core/domain"
)

// StatusTransition describes one workflow step applied to a voucher.
// From is the status the caller observed; the store applies the change
// only if the row still carries that status, so concurrent transitions
// are serialized and the loser sees the post-transition state.
type StatusTransition struct {
	VoucherID int64
	From      domain.VoucherStatus
	To        domain.VoucherStatus
	ActionBy  string
	ActionAt  time.Time
	Comment   string
}

// VoucherReader defines read operations for vouchers and their audit trail.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header without detail lines.
	FindVoucherByID(ctx context.Context, voucherID int64) (*domain.Voucher, error)

	// GetByIDWithDetails retrieves a voucher with its ordered detail lines.
	// Eager loading is explicit here rather than hidden behind a generic
	// repository: vouchers are the only aggregate read this way.
	GetByIDWithDetails(ctx context.Context, voucherID int64) (*domain.Voucher, error)

	// ListVouchersByTenant retrieves a page of voucher headers for a tenant,
	// newest first, with token pagination.
	ListVouchersByTenant(ctx context.Context, tenantID int64, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// ListWorkflowLogs retrieves the append-only transition history of a voucher.
	ListWorkflowLogs(ctx context.Context, voucherID int64) ([]domain.VoucherWorkflowLog, error)
}

// VoucherWriter defines the mutations the workflow engine performs.
// Every method writes the voucher change and its workflow log entry in a
// single database transaction.
type VoucherWriter interface {
	// CreateVoucher inserts a voucher with its details and creation log
	// entry, allocating the next voucher number under numberPrefix.
	// On return voucher.VoucherID and voucher.VoucherNo are populated.
	CreateVoucher(ctx context.Context, voucher *domain.Voucher, numberPrefix string, log domain.VoucherWorkflowLog) error

	// UpdateVoucherDraft replaces the header fields and the full detail
	// line set of a DRAFT voucher and appends an update log entry.
	// Fails with ErrInvalidState if the stored status is no longer DRAFT.
	UpdateVoucherDraft(ctx context.Context, voucher *domain.Voucher, log domain.VoucherWorkflowLog) error

	// TransitionStatus applies a compare-and-set status change plus the
	// matching audit stamps and log entry. Fails with ErrInvalidState when
	// the stored status differs from t.From.
	TransitionStatus(ctx context.Context, tenantID int64, t StatusTransition) error
}

// VoucherRepositoryFacade combines voucher read and write operations.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
