package services_test

import (
	"context"
	"testing"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/core/services"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockBranchRepo *MockBranchRepository
	service        ports.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.mockBranchRepo = new(MockBranchRepository)
	s.service = services.NewUserService(s.mockUserRepo, s.mockBranchRepo)
}

func (s *UserServiceTestSuite) TestRegister_StaffWithBranch() {
	ctx := context.Background()
	branchID := uuid.NewString()

	s.mockBranchRepo.On("FindBranchByID", ctx, branchID).
		Return(&domain.Branch{BranchID: branchID}, nil).Once()
	s.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleStaff &&
			u.BranchID != nil && *u.BranchID == branchID &&
			u.PasswordHash != "" && u.PasswordHash != "correct horse battery"
	})).Return(nil).Once()

	res, err := s.service.Register(ctx, dto.RegisterRequest{
		Email:    "staff@example.com",
		Password: "correct horse battery",
		FullName: "Tran Thi B",
		BranchID: &branchID,
	})

	s.Require().NoError(err)
	// Role defaults to STAFF when unspecified.
	s.Equal(domain.RoleStaff, res.Role)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister_StaffWithoutBranchRejected() {
	_, err := s.service.Register(context.Background(), dto.RegisterRequest{
		Email:    "staff@example.com",
		Password: "correct horse battery",
		FullName: "Tran Thi B",
		Role:     domain.RoleStaff,
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_OwnerIsUnscoped() {
	ctx := context.Background()

	s.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleOwner && u.BranchID == nil
	})).Return(nil).Once()

	res, err := s.service.Register(ctx, dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "correct horse battery",
		FullName: "Nguyen Van A",
		Role:     domain.RoleOwner,
	})

	s.Require().NoError(err)
	s.Nil(res.BranchID)
}

func (s *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()

	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.Register(ctx, dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "correct horse battery",
		FullName: "Nguyen Van A",
		Role:     domain.RoleOwner,
	})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse battery")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         domain.RoleOwner,
	}

	s.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := s.service.Authenticate(ctx, user.Email, "correct horse battery")

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse battery")
	s.Require().NoError(err)

	s.mockUserRepo.On("FindUserByEmail", ctx, "owner@example.com").
		Return(&domain.User{PasswordHash: hash}, nil).Once()

	_, err = s.service.Authenticate(ctx, "owner@example.com", "wrong password")

	s.Require().ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *UserServiceTestSuite) TestAuthenticate_UnknownEmailIndistinguishable() {
	ctx := context.Background()

	s.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Authenticate(ctx, "nobody@example.com", "whatever")

	// Unknown email and wrong password both collapse into the same error.
	s.Require().ErrorIs(err, apperrors.ErrUnauthenticated)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
