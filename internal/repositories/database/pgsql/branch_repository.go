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

// PgxBranchRepository reads branches for voucher scoping and numbering.
type PgxBranchRepository struct {
	BaseRepository
}

func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepository {
	return &PgxBranchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BranchRepository = (*PgxBranchRepository)(nil)

// FindBranchByID retrieves a branch scoped to a tenant.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, tenantID int64, branchID int64) (*domain.Branch, error) {
	var b domain.Branch
	err := r.Pool.QueryRow(ctx, `
		SELECT branch_id, tenant_id, name, code, is_active
		FROM branches
		WHERE tenant_id = $1 AND branch_id = $2;
	`, tenantID, branchID).Scan(&b.BranchID, &b.TenantID, &b.Name, &b.Code, &b.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %d", apperrors.ErrNotFound, branchID)
		}
		return nil, apperrors.NewAppError(500, "failed to find branch", err)
	}
	return &b, nil
}
