package services

import (
	"context"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/acctsys/accounting_backend/internal/dto"
)

// VoucherSvcFacade is the workflow engine surface exposed to the HTTP layer.
// Every call takes the tenant id explicitly and an opaque actor identity;
// the engine performs no authentication of its own.
type VoucherSvcFacade interface {
	CreateVoucher(ctx context.Context, tenantID int64, req dto.CreateVoucherRequest, actor string) (*domain.Voucher, error)
	UpdateVoucher(ctx context.Context, tenantID int64, voucherID int64, req dto.CreateVoucherRequest, actor string) (*domain.Voucher, error)
	VerifyVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string) (*domain.Voucher, error)
	ApproveVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string) (*domain.Voucher, error)
	RejectVoucher(ctx context.Context, tenantID int64, voucherID int64, actor string, comment string) (*domain.Voucher, error)
	GetVoucherByID(ctx context.Context, tenantID int64, voucherID int64) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, tenantID int64, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
	GetWorkflowLog(ctx context.Context, tenantID int64, voucherID int64) ([]domain.VoucherWorkflowLog, error)
}
