package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts. The posting engine treats it
// as a read model; account maintenance happens outside this service core.
type Account struct {
	AccountID   int64       `json:"accountID"`
	TenantID    int64       `json:"tenantID"`
	Code        string      `json:"code"` // Unique per tenant
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	// Hierarchy: root accounts have a nil ParentID; every other account's
	// parent must exist and the parent chain must be acyclic.
	AccountLevel int    `json:"accountLevel"`
	ParentID     *int64 `json:"parentID,omitempty"`
	// Control accounts are grouping nodes; in this design they may still
	// accept direct postings.
	IsControlAccount bool `json:"isControlAccount"`
	// When set, every posting to this account must carry a subsidiary
	// ledger of this type.
	RequiredSubsidiaryTypeID *int64 `json:"requiredSubsidiaryTypeID,omitempty"`
	IsActive                 bool   `json:"isActive"`
}

// SubsidiaryType categorizes subsidiary ledgers (e.g. Customer, Vendor).
type SubsidiaryType struct {
	SubsidiaryTypeID int64  `json:"subsidiaryTypeID"`
	Name             string `json:"name"`
}

// SubsidiaryLedger is a sub-account (a specific customer, vendor, ...)
// linked under a control account, enabling per-party balances without
// multiplying the chart of accounts.
type SubsidiaryLedger struct {
	SubsidiaryLedgerID int64  `json:"subsidiaryLedgerID"`
	TenantID           int64  `json:"tenantID"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	SubsidiaryTypeID   int64  `json:"subsidiaryTypeID"`
	ControlAccountID   int64  `json:"controlAccountID"`
	IsActive           bool   `json:"isActive"`
}

// Branch identifies the business location a voucher was entered at.
// Its code participates in voucher number generation.
type Branch struct {
	BranchID int64  `json:"branchID"`
	TenantID int64  `json:"tenantID"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"isActive"`
}
