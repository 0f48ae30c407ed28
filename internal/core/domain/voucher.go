package domain

import "time"

// VoucherType classifies the business nature of a voucher.
type VoucherType string

const (
	Journal VoucherType = "JOURNAL"
	Payment VoucherType = "PAYMENT"
	Receipt VoucherType = "RECEIPT"
	Contra  VoucherType = "CONTRA"
)

// VoucherStatus is the workflow state of a voucher.
//
// The legal transitions form a strict chain with a rejection escape:
//
//	DRAFT -> VERIFIED -> APPROVED
//	DRAFT | VERIFIED -> REJECTED
//
// APPROVED and REJECTED are terminal. Only APPROVED vouchers are visible
// to any report.
type VoucherStatus string

const (
	Draft    VoucherStatus = "DRAFT"
	Verified VoucherStatus = "VERIFIED"
	Approved VoucherStatus = "APPROVED"
	Rejected VoucherStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s VoucherStatus) IsTerminal() bool {
	return s == Approved || s == Rejected
}

// CanTransitionTo reports whether moving from s to target is a legal
// workflow step. No state may be skipped and no transition is reversible.
func (s VoucherStatus) CanTransitionTo(target VoucherStatus) bool {
	switch target {
	case Verified:
		return s == Draft
	case Approved:
		return s == Verified
	case Rejected:
		return !s.IsTerminal()
	default:
		return false
	}
}

// Voucher is a dated, typed journal entry owning an ordered set of
// balanced debit/credit detail lines.
type Voucher struct {
	VoucherID     int64         `json:"voucherID"`
	TenantID      int64         `json:"tenantID"`
	Date          time.Time     `json:"date"`
	VoucherNo     string        `json:"voucherNo"` // Generated at creation, unique per tenant
	ReferenceNo   string        `json:"referenceNo,omitempty"`
	Narration     string        `json:"narration,omitempty"`
	VoucherType   VoucherType   `json:"voucherType"`
	Status        VoucherStatus `json:"status"`
	BranchID      int64         `json:"branchID"`
	AttachmentRef string        `json:"attachmentRef,omitempty"` // Opaque reference, never opened here
	AuditFields
	VerifiedBy *string    `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	Details []VoucherDetail `json:"details,omitempty"`
}

// VoucherDetail is a single debit or credit line within a voucher.
type VoucherDetail struct {
	VoucherDetailID    int64  `json:"voucherDetailID"`
	VoucherID          int64  `json:"voucherID"`
	AccountID          int64  `json:"accountID"`
	SubsidiaryLedgerID *int64 `json:"subsidiaryLedgerID,omitempty"`
	DebitAmount        Money  `json:"debitAmount"`
	CreditAmount       Money  `json:"creditAmount"`
	LineNarration      string `json:"lineNarration,omitempty"`
}

// VoucherWorkflowLog is an immutable record of one status transition.
// Rows are append-only; together they form the voucher's audit trail.
type VoucherWorkflowLog struct {
	LogID      int64         `json:"logID"`
	VoucherID  int64         `json:"voucherID"`
	FromStatus VoucherStatus `json:"fromStatus"`
	ToStatus   VoucherStatus `json:"toStatus"`
	ActionBy   string        `json:"actionBy"`
	ActionAt   time.Time     `json:"actionAt"`
	Comment    string        `json:"comment,omitempty"`
}
