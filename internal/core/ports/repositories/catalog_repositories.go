package repositories

import (
	"context"

	"github.com/acctsys/accounting_backend/internal/core/domain"
)

// AccountRepository exposes the chart of accounts as a read model.
// Account maintenance is owned by an external collaborator; the posting
// engine never mutates the catalog.
type AccountRepository interface {
	// FindAccountByID retrieves an account scoped to a tenant.
	FindAccountByID(ctx context.Context, tenantID int64, accountID int64) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple tenant accounts keyed by id.
	// Missing ids are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, tenantID int64, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves the tenant's full chart of accounts.
	ListAccounts(ctx context.Context, tenantID int64) ([]domain.Account, error)
}

// SubsidiaryRepository exposes subsidiary ledgers as a read model.
type SubsidiaryRepository interface {
	// FindSubsidiaryLedgersByIDs retrieves tenant subsidiary ledgers keyed
	// by id. Missing ids are absent from the result map.
	FindSubsidiaryLedgersByIDs(ctx context.Context, tenantID int64, ids []int64) (map[int64]domain.SubsidiaryLedger, error)
}

// BranchRepository exposes branches as a read model; the engine only needs
// them to scope vouchers and build voucher numbers.
type BranchRepository interface {
	FindBranchByID(ctx context.Context, tenantID int64, branchID int64) (*domain.Branch, error)
}
