package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/apperrors"
	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/cashbookvn/cashbook_backend/internal/utils"
	"github.com/google/uuid"
)

// userService manages registration and credential checks.
type userService struct {
	userRepo   ports.UserRepository
	branchRepo ports.BranchRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo ports.UserRepository, branchRepo ports.BranchRepository) ports.UserService {
	return &userService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

var _ ports.UserService = (*userService)(nil)

// Register creates a new user. STAFF must carry a home branch; the branch
// must exist. Duplicate emails are a conflict.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleStaff
	}
	if role == domain.RoleStaff && req.BranchID == nil {
		return nil, fmt.Errorf("%w: branchId is required for staff users", apperrors.ErrValidation)
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.FindBranchByID(ctx, *req.BranchID); err != nil {
			return nil, err
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if role == domain.RoleStaff {
		user.BranchID = req.BranchID
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Warn("Failed to save user", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	res := dto.ToUserResponse(&user)
	return &res, nil
}

// Authenticate verifies credentials. Any mismatch (unknown email or wrong
// password) collapses into ErrUnauthenticated so the two cases are
// indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// GetUserByID returns the user profile for the /me endpoint.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := dto.ToUserResponse(user)
	return &res, nil
}
