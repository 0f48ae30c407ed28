package services

import (
	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
	"github.com/acctsys/accounting_backend/internal/repositories/database/pgsql"
)

// NewServiceContainer wires all services against the repository container.
func NewServiceContainer(repos *pgsql.RepositoryContainer) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Voucher:   NewVoucherService(repos.Voucher, repos.Account, repos.Subsidiary, repos.Branch),
		Reporting: NewReportingService(repos.Reporting, repos.Account),
	}
}
