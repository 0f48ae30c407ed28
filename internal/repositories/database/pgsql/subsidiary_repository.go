package pgsql

import (
	"context"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSubsidiaryRepository reads subsidiary ledgers for posting validation.
type PgxSubsidiaryRepository struct {
	BaseRepository
}

func newPgxSubsidiaryRepository(pool *pgxpool.Pool) portsrepo.SubsidiaryRepository {
	return &PgxSubsidiaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubsidiaryRepository = (*PgxSubsidiaryRepository)(nil)

// FindSubsidiaryLedgersByIDs retrieves tenant subsidiary ledgers keyed by id.
func (r *PgxSubsidiaryRepository) FindSubsidiaryLedgersByIDs(ctx context.Context, tenantID int64, ids []int64) (map[int64]domain.SubsidiaryLedger, error) {
	result := make(map[int64]domain.SubsidiaryLedger, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT subsidiary_ledger_id, tenant_id, name, code, subsidiary_type_id, control_account_id, is_active
		FROM subsidiary_ledgers
		WHERE tenant_id = $1 AND subsidiary_ledger_id = ANY($2);
	`, tenantID, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query subsidiary ledgers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.SubsidiaryLedger
		if err := rows.Scan(&s.SubsidiaryLedgerID, &s.TenantID, &s.Name, &s.Code, &s.SubsidiaryTypeID, &s.ControlAccountID, &s.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan subsidiary ledger", err)
		}
		result[s.SubsidiaryLedgerID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate subsidiary ledgers", err)
	}
	return result, nil
}
