package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portsrepo "github.com/acctsys/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
	"github.com/acctsys/accounting_backend/internal/core/services"
	"github.com/acctsys/accounting_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) CreateVoucher(ctx context.Context, voucher *domain.Voucher, numberPrefix string, log domain.VoucherWorkflowLog) error {
	args := m.Called(ctx, voucher, numberPrefix, log)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherDraft(ctx context.Context, voucher *domain.Voucher, log domain.VoucherWorkflowLog) error {
	args := m.Called(ctx, voucher, log)
	return args.Error(0)
}

func (m *MockVoucherRepository) TransitionStatus(ctx context.Context, tenantID int64, t portsrepo.StatusTransition) error {
	args := m.Called(ctx, tenantID, t)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID int64) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) GetByIDWithDetails(ctx context.Context, voucherID int64) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchersByTenant(ctx context.Context, tenantID int64, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Voucher), returnedNextToken, args.Error(2)
}

func (m *MockVoucherRepository) ListWorkflowLogs(ctx context.Context, voucherID int64) ([]domain.VoucherWorkflowLog, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherWorkflowLog), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID int64, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID int64, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID int64) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock SubsidiaryRepository ---
type MockSubsidiaryRepository struct {
	mock.Mock
}

var _ portsrepo.SubsidiaryRepository = (*MockSubsidiaryRepository)(nil)

func (m *MockSubsidiaryRepository) FindSubsidiaryLedgersByIDs(ctx context.Context, tenantID int64, ids []int64) (map[int64]domain.SubsidiaryLedger, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.SubsidiaryLedger), args.Error(1)
}

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepository = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, tenantID int64, branchID int64) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo    *MockVoucherRepository
	mockAccountRepo    *MockAccountRepository
	mockSubsidiaryRepo *MockSubsidiaryRepository
	mockBranchRepo     *MockBranchRepository
	service            portssvc.VoucherSvcFacade
	tenantID           int64
	actor              string
	branch             domain.Branch
	cashAccount        domain.Account
	revenueAccount     domain.Account
	receivableAccount  domain.Account
	customerLedger     domain.SubsidiaryLedger
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSubsidiaryRepo = new(MockSubsidiaryRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.service = services.NewVoucherService(
		suite.mockVoucherRepo,
		suite.mockAccountRepo,
		suite.mockSubsidiaryRepo,
		suite.mockBranchRepo,
	)

	suite.tenantID = 1
	suite.actor = "alice"
	suite.branch = domain.Branch{BranchID: 10, TenantID: suite.tenantID, Name: "Head Office", Code: "HQ", IsActive: true}

	customerType := int64(5)
	suite.cashAccount = domain.Account{
		AccountID: 100, TenantID: suite.tenantID, Code: "1000", Name: "Cash",
		AccountType: domain.Asset, IsActive: true,
	}
	suite.revenueAccount = domain.Account{
		AccountID: 200, TenantID: suite.tenantID, Code: "4000", Name: "Sales",
		AccountType: domain.Revenue, IsActive: true,
	}
	suite.receivableAccount = domain.Account{
		AccountID: 300, TenantID: suite.tenantID, Code: "1200", Name: "Accounts Receivable",
		AccountType: domain.Asset, IsActive: true, IsControlAccount: true,
		RequiredSubsidiaryTypeID: &customerType,
	}
	suite.customerLedger = domain.SubsidiaryLedger{
		SubsidiaryLedgerID: 77, TenantID: suite.tenantID, Name: "ACME Ltd", Code: "CUST-001",
		SubsidiaryTypeID: customerType, ControlAccountID: suite.receivableAccount.AccountID, IsActive: true,
	}
}

func (suite *VoucherServiceTestSuite) balancedRequest() dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Narration:   "Cash sale",
		VoucherType: domain.Journal,
		BranchID:    suite.branch.BranchID,
		Details: []dto.VoucherDetailRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromFloat(100.00)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromFloat(100.00)},
		},
	}
}

func (suite *VoucherServiceTestSuite) accountsMap(accounts ...domain.Account) map[int64]domain.Account {
	m := make(map[int64]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- CreateVoucher ---

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{100, 200}).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.tenantID, suite.branch.BranchID).
		Return(&suite.branch, nil).Once()
	suite.mockVoucherRepo.On("CreateVoucher", ctx, mock.AnythingOfType("*domain.Voucher"), "JOURNAL-HQ-2025", mock.AnythingOfType("domain.VoucherWorkflowLog")).
		Run(func(args mock.Arguments) {
			v := args.Get(1).(*domain.Voucher)
			v.VoucherID = 42
			v.VoucherNo = "JOURNAL-HQ-2025-000001"
		}).
		Return(nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(voucher)
	suite.Equal(int64(42), voucher.VoucherID)
	suite.Equal("JOURNAL-HQ-2025-000001", voucher.VoucherNo)
	suite.Equal(domain.Draft, voucher.Status)
	suite.Equal(suite.actor, voucher.CreatedBy)
	suite.Len(voucher.Details, 2)
	suite.Equal(domain.Money(10000), voucher.Details[0].DebitAmount)
	suite.Equal(domain.Money(10000), voucher.Details[1].CreditAmount)

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Details[1].CreditAmount = decimal.NewFromFloat(99.99)

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_LineWithDebitAndCredit() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Details[0].CreditAmount = decimal.NewFromFloat(50.00)

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SubMinorPrecisionRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Details[0].DebitAmount = decimal.RequireFromString("100.005")
	req.Details[1].CreditAmount = decimal.RequireFromString("100.005")

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.cashAccount
	inactive.IsActive = false
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{100, 200}).
		Return(suite.accountsMap(inactive, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{100, 200}).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SubsidiaryRequired() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Details[0].AccountID = suite.receivableAccount.AccountID // no subsidiary ledger given

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{300, 200}).
		Return(suite.accountsMap(suite.receivableAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SubsidiaryTypeMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest()

	vendorLedger := suite.customerLedger
	vendorLedger.SubsidiaryTypeID = 99
	req.Details[0].AccountID = suite.receivableAccount.AccountID
	req.Details[0].SubsidiaryLedgerID = &vendorLedger.SubsidiaryLedgerID

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{300, 200}).
		Return(suite.accountsMap(suite.receivableAccount, suite.revenueAccount), nil).Once()
	suite.mockSubsidiaryRepo.On("FindSubsidiaryLedgersByIDs", ctx, suite.tenantID, []int64{77}).
		Return(map[int64]domain.SubsidiaryLedger{77: vendorLedger}, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SubsidiaryMatch() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Details[0].AccountID = suite.receivableAccount.AccountID
	req.Details[0].SubsidiaryLedgerID = &suite.customerLedger.SubsidiaryLedgerID

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{300, 200}).
		Return(suite.accountsMap(suite.receivableAccount, suite.revenueAccount), nil).Once()
	suite.mockSubsidiaryRepo.On("FindSubsidiaryLedgersByIDs", ctx, suite.tenantID, []int64{77}).
		Return(map[int64]domain.SubsidiaryLedger{77: suite.customerLedger}, nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.tenantID, suite.branch.BranchID).
		Return(&suite.branch, nil).Once()
	suite.mockVoucherRepo.On("CreateVoucher", ctx, mock.AnythingOfType("*domain.Voucher"), "JOURNAL-HQ-2025", mock.AnythingOfType("domain.VoucherWorkflowLog")).
		Return(nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(voucher.Details[0].SubsidiaryLedgerID)
	suite.Equal(suite.customerLedger.SubsidiaryLedgerID, *voucher.Details[0].SubsidiaryLedgerID)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_BranchNotFound() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{100, 200}).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.tenantID, suite.branch.BranchID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateVoucher(ctx, suite.tenantID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateVoucher ---

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_NonDraftImmutable() {
	ctx := context.Background()
	approved := &domain.Voucher{
		VoucherID: 42, TenantID: suite.tenantID, Status: domain.Approved,
	}
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(approved, nil).Once()

	_, err := suite.service.UpdateVoucher(ctx, suite.tenantID, 42, suite.balancedRequest(), suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "UpdateVoucherDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucher_Draft() {
	ctx := context.Background()
	draft := &domain.Voucher{
		VoucherID: 42, TenantID: suite.tenantID, Status: domain.Draft,
		VoucherNo: "JOURNAL-HQ-2025-000001",
	}
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(draft, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, []int64{100, 200}).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockBranchRepo.On("FindBranchByID", ctx, suite.tenantID, suite.branch.BranchID).
		Return(&suite.branch, nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucherDraft", ctx, mock.AnythingOfType("*domain.Voucher"), mock.AnythingOfType("domain.VoucherWorkflowLog")).
		Return(nil).Once()

	updated, err := suite.service.UpdateVoucher(ctx, suite.tenantID, 42, suite.balancedRequest(), suite.actor)

	suite.Require().NoError(err)
	suite.Equal("JOURNAL-HQ-2025-000001", updated.VoucherNo) // number never regenerated
	suite.Equal(suite.actor, updated.LastUpdatedBy)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

// --- Workflow transitions ---

func (suite *VoucherServiceTestSuite) TestVerifyVoucher_FromDraft() {
	ctx := context.Background()
	draft := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Draft}
	verified := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Verified}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(draft, nil).Once()
	suite.mockVoucherRepo.On("TransitionStatus", ctx, suite.tenantID, mock.MatchedBy(func(t portsrepo.StatusTransition) bool {
		return t.VoucherID == 42 && t.From == domain.Draft && t.To == domain.Verified && t.ActionBy == suite.actor
	})).Return(nil).Once()
	suite.mockVoucherRepo.On("GetByIDWithDetails", ctx, int64(42)).Return(verified, nil).Once()

	voucher, err := suite.service.VerifyVoucher(ctx, suite.tenantID, 42, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Verified, voucher.Status)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FromDraftRejected() {
	ctx := context.Background()
	draft := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Draft}
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(draft, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, suite.tenantID, 42, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FromVerified() {
	ctx := context.Background()
	verified := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Verified}
	approved := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Approved}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(verified, nil).Once()
	suite.mockVoucherRepo.On("TransitionStatus", ctx, suite.tenantID, mock.MatchedBy(func(t portsrepo.StatusTransition) bool {
		return t.From == domain.Verified && t.To == domain.Approved
	})).Return(nil).Once()
	suite.mockVoucherRepo.On("GetByIDWithDetails", ctx, int64(42)).Return(approved, nil).Once()

	voucher, err := suite.service.ApproveVoucher(ctx, suite.tenantID, 42, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Approved, voucher.Status)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_TerminalStatus() {
	ctx := context.Background()
	rejected := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Rejected}
	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(rejected, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, suite.tenantID, 42, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *VoucherServiceTestSuite) TestRejectVoucher_CommentRequired() {
	ctx := context.Background()

	_, err := suite.service.RejectVoucher(ctx, suite.tenantID, 42, suite.actor, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "FindVoucherByID", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestRejectVoucher_FromVerified() {
	ctx := context.Background()
	verified := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Verified}
	rejected := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Rejected}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(verified, nil).Once()
	suite.mockVoucherRepo.On("TransitionStatus", ctx, suite.tenantID, mock.MatchedBy(func(t portsrepo.StatusTransition) bool {
		return t.To == domain.Rejected && t.Comment == "amounts disputed"
	})).Return(nil).Once()
	suite.mockVoucherRepo.On("GetByIDWithDetails", ctx, int64(42)).Return(rejected, nil).Once()

	voucher, err := suite.service.RejectVoucher(ctx, suite.tenantID, 42, suite.actor, "amounts disputed")

	suite.Require().NoError(err)
	suite.Equal(domain.Rejected, voucher.Status)
}

func (suite *VoucherServiceTestSuite) TestTransition_ConcurrentLoser() {
	ctx := context.Background()
	draft := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Draft}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(draft, nil).Once()
	suite.mockVoucherRepo.On("TransitionStatus", ctx, suite.tenantID, mock.AnythingOfType("repositories.StatusTransition")).
		Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.VerifyVoucher(ctx, suite.tenantID, 42, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "GetByIDWithDetails", mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *VoucherServiceTestSuite) TestGetVoucherByID_CrossTenantObscured() {
	ctx := context.Background()
	other := &domain.Voucher{VoucherID: 42, TenantID: 999, Status: domain.Draft}
	suite.mockVoucherRepo.On("GetByIDWithDetails", ctx, int64(42)).Return(other, nil).Once()

	_, err := suite.service.GetVoucherByID(ctx, suite.tenantID, 42)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestListVouchers_DefaultLimit() {
	ctx := context.Background()
	suite.mockVoucherRepo.On("ListVouchersByTenant", ctx, suite.tenantID, 20, (*string)(nil)).
		Return([]domain.Voucher{}, nil, nil).Once()

	page, err := suite.service.ListVouchers(ctx, suite.tenantID, dto.ListVouchersParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Vouchers)
	suite.Nil(page.NextToken)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestGetWorkflowLog() {
	ctx := context.Background()
	draft := &domain.Voucher{VoucherID: 42, TenantID: suite.tenantID, Status: domain.Verified}
	logs := []domain.VoucherWorkflowLog{
		{LogID: 1, VoucherID: 42, FromStatus: domain.Draft, ToStatus: domain.Draft, ActionBy: suite.actor, Comment: "Created"},
		{LogID: 2, VoucherID: 42, FromStatus: domain.Draft, ToStatus: domain.Verified, ActionBy: "bob", Comment: "Verified"},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, int64(42)).Return(draft, nil).Once()
	suite.mockVoucherRepo.On("ListWorkflowLogs", ctx, int64(42)).Return(logs, nil).Once()

	got, err := suite.service.GetWorkflowLog(ctx, suite.tenantID, 42)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.Equal(domain.Verified, got[1].ToStatus)
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
