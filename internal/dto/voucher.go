package dto

import (
	"time"

	"github.com/acctsys/accounting_backend/internal/core/domain"
	"github.com/acctsys/accounting_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// VoucherDetailRequest is one debit/credit line of a voucher request.
// Amounts arrive as major-unit decimals and are converted to minor units
// before they reach the engine.
type VoucherDetailRequest struct {
	AccountID          int64           `json:"accountID" binding:"required"`
	SubsidiaryLedgerID *int64          `json:"subsidiaryLedgerID,omitempty"`
	DebitAmount        decimal.Decimal `json:"debitAmount"`
	CreditAmount       decimal.Decimal `json:"creditAmount"`
	LineNarration      string          `json:"lineNarration,omitempty"`
}

// CreateVoucherRequest creates a new DRAFT voucher; the same shape is used
// for updating a draft, which replaces the header and all detail lines.
type CreateVoucherRequest struct {
	Date          time.Time              `json:"date" binding:"required"`
	ReferenceNo   string                 `json:"referenceNo,omitempty"`
	Narration     string                 `json:"narration,omitempty"`
	VoucherType   domain.VoucherType     `json:"voucherType" binding:"required,oneof=JOURNAL PAYMENT RECEIPT CONTRA"`
	BranchID      int64                  `json:"branchID" binding:"required"`
	AttachmentRef string                 `json:"attachmentRef,omitempty"`
	Details       []VoucherDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// RejectVoucherRequest carries the mandatory rejection reason.
type RejectVoucherRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ListVouchersParams holds pagination parameters for listing vouchers.
type ListVouchersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// VoucherDetailResponse is one voucher line in API responses.
type VoucherDetailResponse struct {
	VoucherDetailID    int64  `json:"voucherDetailID"`
	AccountID          int64  `json:"accountID"`
	SubsidiaryLedgerID *int64 `json:"subsidiaryLedgerID,omitempty"`
	DebitAmount        string `json:"debitAmount"`
	CreditAmount       string `json:"creditAmount"`
	LineNarration      string `json:"lineNarration,omitempty"`
}

// VoucherResponse is the API representation of a voucher.
type VoucherResponse struct {
	VoucherID     int64                   `json:"voucherID"`
	TenantID      int64                   `json:"tenantID"`
	Date          time.Time               `json:"date"`
	VoucherNo     string                  `json:"voucherNo"`
	ReferenceNo   string                  `json:"referenceNo,omitempty"`
	Narration     string                  `json:"narration,omitempty"`
	VoucherType   domain.VoucherType      `json:"voucherType"`
	Status        domain.VoucherStatus    `json:"status"`
	BranchID      int64                   `json:"branchID"`
	AttachmentRef string                  `json:"attachmentRef,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	CreatedBy     string                  `json:"createdBy"`
	VerifiedBy    *string                 `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time              `json:"verifiedAt,omitempty"`
	ApprovedBy    *string                 `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time              `json:"approvedAt,omitempty"`
	Details       []VoucherDetailResponse `json:"details,omitempty"`
}

// ListVouchersResponse is a page of vouchers plus the continuation token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// WorkflowLogResponse is one audit-trail entry of a voucher.
type WorkflowLogResponse struct {
	LogID      int64                `json:"logID"`
	FromStatus domain.VoucherStatus `json:"fromStatus"`
	ToStatus   domain.VoucherStatus `json:"toStatus"`
	ActionBy   string               `json:"actionBy"`
	ActionAt   time.Time            `json:"actionAt"`
	Comment    string               `json:"comment,omitempty"`
}

// ToVoucherResponse converts a domain.Voucher to its API representation.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:     v.VoucherID,
		TenantID:      v.TenantID,
		Date:          v.Date,
		VoucherNo:     v.VoucherNo,
		ReferenceNo:   v.ReferenceNo,
		Narration:     v.Narration,
		VoucherType:   v.VoucherType,
		Status:        v.Status,
		BranchID:      v.BranchID,
		AttachmentRef: v.AttachmentRef,
		CreatedAt:     v.CreatedAt,
		CreatedBy:     v.CreatedBy,
		VerifiedBy:    v.VerifiedBy,
		VerifiedAt:    v.VerifiedAt,
		ApprovedBy:    v.ApprovedBy,
		ApprovedAt:    v.ApprovedAt,
	}
	if len(v.Details) > 0 {
		resp.Details = make([]VoucherDetailResponse, len(v.Details))
		for i, d := range v.Details {
			resp.Details[i] = VoucherDetailResponse{
				VoucherDetailID:    d.VoucherDetailID,
				AccountID:          d.AccountID,
				SubsidiaryLedgerID: d.SubsidiaryLedgerID,
				DebitAmount:        money.Format(d.DebitAmount),
				CreditAmount:       money.Format(d.CreditAmount),
				LineNarration:      d.LineNarration,
			}
		}
	}
	return resp
}

// ToVoucherResponses converts a slice of vouchers.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	responses := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = ToVoucherResponse(&vouchers[i])
	}
	return responses
}

// ToWorkflowLogResponses converts a voucher's transition history.
func ToWorkflowLogResponses(logs []domain.VoucherWorkflowLog) []WorkflowLogResponse {
	responses := make([]WorkflowLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = WorkflowLogResponse{
			LogID:      l.LogID,
			FromStatus: l.FromStatus,
			ToStatus:   l.ToStatus,
			ActionBy:   l.ActionBy,
			ActionAt:   l.ActionAt,
			Comment:    l.Comment,
		}
	}
	return responses
}
