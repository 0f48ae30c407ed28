package pgsql

import (
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer groups every repository implementation behind its
// port, built on one shared connection pool.
type RepositoryContainer struct {
	Voucher    portsrepo.VoucherRepositoryFacade
	Account    portsrepo.AccountRepository
	Subsidiary portsrepo.SubsidiaryRepository
	Branch     portsrepo.BranchRepository
	Reporting  portsrepo.ReportingRepository
}

// NewRepositoryContainer constructs all repositories over the given pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		Voucher:    newPgxVoucherRepository(pool),
		Account:    newPgxAccountRepository(pool),
		Subsidiary: newPgxSubsidiaryRepository(pool),
		Branch:     newPgxBranchRepository(pool),
		Reporting:  newPgxReportingRepository(pool),
	}
}
