package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/core/services"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockBranchRepo  *MockBranchRepository
	service         ports.AccountService
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockBranchRepo = new(MockBranchRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, s.mockBranchRepo)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	actor := ownerActor()
	branchID := uuid.NewString()

	s.mockBranchRepo.On("FindBranchByID", ctx, branchID).
		Return(&domain.Branch{BranchID: branchID, Name: "District 1"}, nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.BranchID == branchID &&
			acc.Name == "Front desk cash" &&
			acc.AccountType == domain.Cash &&
			acc.IsActive &&
			acc.CreatedBy == actor.UserID
	})).Return(nil).Once()

	res, err := s.service.CreateAccount(ctx, actor, dto.CreateAccountRequest{
		BranchID:    branchID,
		Name:        "Front desk cash",
		AccountType: domain.Cash,
	})

	s.Require().NoError(err)
	s.NotEmpty(res.AccountID)
	s.True(res.Balance.IsZero())
	s.True(res.IsActive)
	s.WithinDuration(time.Now(), res.CreatedAt, time.Second)
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockBranchRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_StaffForbidden() {
	_, err := s.service.CreateAccount(context.Background(), staffActor(uuid.NewString()), dto.CreateAccountRequest{
		BranchID:    uuid.NewString(),
		Name:        "Front desk cash",
		AccountType: domain.Cash,
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownBranch() {
	ctx := context.Background()
	branchID := uuid.NewString()

	s.mockBranchRepo.On("FindBranchByID", ctx, branchID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(ctx, ownerActor(), dto.CreateAccountRequest{
		BranchID:    branchID,
		Name:        "Front desk cash",
		AccountType: domain.BankTransfer,
	})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestListAccounts_AttachesDerivedBalances() {
	ctx := context.Background()
	branchID := uuid.NewString()
	accA := domain.Account{AccountID: uuid.NewString(), BranchID: branchID, IsActive: true}
	accB := domain.Account{AccountID: uuid.NewString(), BranchID: branchID, IsActive: true}

	s.mockAccountRepo.On("ListAccounts", ctx, branchID).
		Return([]domain.Account{accA, accB}, nil).Once()
	s.mockAccountRepo.On("SumAccountBalances", ctx, []string{accA.AccountID, accB.AccountID}).
		Return(map[string]decimal.Decimal{accA.AccountID: decimal.NewFromInt(120_000)}, nil).Once()

	res, err := s.service.ListAccounts(ctx, staffActor(branchID), dto.ListAccountsParams{})

	s.Require().NoError(err)
	s.Require().Len(res.Accounts, 2)
	s.True(res.Accounts[0].Balance.Equal(decimal.NewFromInt(120_000)))
	// Accounts with no entries report a zero balance, not an error.
	s.True(res.Accounts[1].Balance.IsZero())
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()
	s.mockAccountRepo.On("SetAccountActive", ctx, accountID, false).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, ownerActor(), accountID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_StaffForbidden() {
	err := s.service.DeactivateAccount(context.Background(), staffActor(uuid.NewString()), uuid.NewString())

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SetAccountActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
