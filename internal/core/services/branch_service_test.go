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

type BranchServiceTestSuite struct {
	suite.Suite
	mockBranchRepo  *MockBranchRepository
	mockAccountRepo *MockAccountRepository
	service         ports.BranchService
}

func (s *BranchServiceTestSuite) SetupTest() {
	s.mockBranchRepo = new(MockBranchRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewBranchService(s.mockBranchRepo, s.mockAccountRepo)
}

func (s *BranchServiceTestSuite) TestCreateBranch_Success() {
	ctx := context.Background()
	actor := ownerActor()

	s.mockBranchRepo.On("SaveBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Name == "District 3" && b.CreatedBy == actor.UserID && b.BranchID != ""
	})).Return(nil).Once()

	res, err := s.service.CreateBranch(ctx, actor, dto.CreateBranchRequest{Name: "District 3"})

	s.Require().NoError(err)
	s.NotEmpty(res.BranchID)
	s.Equal("District 3", res.Name)
	s.True(res.Balance.IsZero())
	// A fresh branch has no accounts yet but still serializes an empty list.
	s.NotNil(res.Accounts)
	s.Empty(res.Accounts)
	s.WithinDuration(time.Now(), res.CreatedAt, time.Second)
	s.mockBranchRepo.AssertExpectations(s.T())
}

func (s *BranchServiceTestSuite) TestCreateBranch_StaffForbidden() {
	_, err := s.service.CreateBranch(context.Background(), staffActor(uuid.NewString()), dto.CreateBranchRequest{Name: "District 3"})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockBranchRepo.AssertNotCalled(s.T(), "SaveBranch", mock.Anything, mock.Anything)
}

func (s *BranchServiceTestSuite) TestCreateBranch_DuplicateName() {
	ctx := context.Background()

	s.mockBranchRepo.On("SaveBranch", ctx, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateBranch(ctx, ownerActor(), dto.CreateBranchRequest{Name: "District 1"})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *BranchServiceTestSuite) TestListBranches_AttachesTotalsAndAccounts() {
	ctx := context.Background()
	branchA := domain.Branch{BranchID: uuid.NewString(), Name: "District 1"}
	branchB := domain.Branch{BranchID: uuid.NewString(), Name: "District 7"}
	cashAcc := domain.Account{AccountID: uuid.NewString(), BranchID: branchA.BranchID, AccountType: domain.Cash}
	bankAcc := domain.Account{AccountID: uuid.NewString(), BranchID: branchA.BranchID, AccountType: domain.BankTransfer}

	s.mockBranchRepo.On("ListBranches", ctx, "").
		Return([]domain.Branch{branchA, branchB}, nil).Once()
	s.mockBranchRepo.On("SumBranchBalances", ctx, []string{branchA.BranchID, branchB.BranchID}).
		Return(map[string]decimal.Decimal{branchA.BranchID: decimal.NewFromInt(750_000)}, nil).Once()
	s.mockAccountRepo.On("ListAccounts", ctx, "").
		Return([]domain.Account{cashAcc, bankAcc}, nil).Once()

	res, err := s.service.ListBranches(ctx, ownerActor())

	s.Require().NoError(err)
	s.Require().Len(res.Branches, 2)
	s.True(res.Branches[0].Balance.Equal(decimal.NewFromInt(750_000)))
	s.Require().Len(res.Branches[0].Accounts, 2)
	s.Equal(cashAcc.AccountID, res.Branches[0].Accounts[0].AccountID)
	s.Equal(domain.Cash, res.Branches[0].Accounts[0].AccountType)
	s.Equal(domain.BankTransfer, res.Branches[0].Accounts[1].AccountType)
	// Branches with no entries report a zero total and an empty account list.
	s.True(res.Branches[1].Balance.IsZero())
	s.NotNil(res.Branches[1].Accounts)
	s.Empty(res.Branches[1].Accounts)
}

func (s *BranchServiceTestSuite) TestListBranches_StaffPinnedToHomeBranch() {
	ctx := context.Background()
	branchID := uuid.NewString()
	home := domain.Branch{BranchID: branchID, Name: "District 1"}

	s.mockBranchRepo.On("ListBranches", ctx, branchID).
		Return([]domain.Branch{home}, nil).Once()
	s.mockBranchRepo.On("SumBranchBalances", ctx, []string{branchID}).
		Return(map[string]decimal.Decimal{branchID: decimal.NewFromInt(50_000)}, nil).Once()
	s.mockAccountRepo.On("ListAccounts", ctx, branchID).
		Return([]domain.Account{}, nil).Once()

	res, err := s.service.ListBranches(ctx, staffActor(branchID))

	s.Require().NoError(err)
	s.Require().Len(res.Branches, 1)
	s.Equal(branchID, res.Branches[0].BranchID)
	s.mockBranchRepo.AssertExpectations(s.T())
}

func (s *BranchServiceTestSuite) TestRenameBranch_Success() {
	ctx := context.Background()
	branchID := uuid.NewString()
	renamed := domain.Branch{BranchID: branchID, Name: "District 1 HQ"}

	s.mockBranchRepo.On("RenameBranch", ctx, branchID, "District 1 HQ").
		Return(&renamed, nil).Once()
	s.mockBranchRepo.On("SumBranchBalances", ctx, []string{branchID}).
		Return(map[string]decimal.Decimal{branchID: decimal.NewFromInt(300_000)}, nil).Once()
	s.mockAccountRepo.On("ListAccounts", ctx, branchID).
		Return([]domain.Account{{AccountID: uuid.NewString(), BranchID: branchID, AccountType: domain.Cash}}, nil).Once()

	res, err := s.service.RenameBranch(ctx, ownerActor(), branchID, dto.RenameBranchRequest{Name: "District 1 HQ"})

	s.Require().NoError(err)
	s.Equal("District 1 HQ", res.Name)
	s.True(res.Balance.Equal(decimal.NewFromInt(300_000)))
	s.Len(res.Accounts, 1)
}

func (s *BranchServiceTestSuite) TestRenameBranch_StaffForbidden() {
	_, err := s.service.RenameBranch(context.Background(), staffActor(uuid.NewString()), uuid.NewString(), dto.RenameBranchRequest{Name: "HQ"})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockBranchRepo.AssertNotCalled(s.T(), "RenameBranch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BranchServiceTestSuite) TestRenameBranch_NotFound() {
	ctx := context.Background()
	branchID := uuid.NewString()

	s.mockBranchRepo.On("RenameBranch", ctx, branchID, "HQ").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RenameBranch(ctx, ownerActor(), branchID, dto.RenameBranchRequest{Name: "HQ"})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
