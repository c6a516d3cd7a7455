package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// branchService manages branches.
type branchService struct {
	branchRepo  ports.BranchRepository
	accountRepo ports.AccountRepository
}

// NewBranchService creates a new BranchService.
func NewBranchService(branchRepo ports.BranchRepository, accountRepo ports.AccountRepository) ports.BranchService {
	return &branchService{
		branchRepo:  branchRepo,
		accountRepo: accountRepo,
	}
}

var _ ports.BranchService = (*branchService)(nil)

// CreateBranch creates a branch. OWNER only; duplicate names are a conflict.
func (s *branchService) CreateBranch(ctx context.Context, actor *domain.AuthUser, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(actor, OpManage, ""); err != nil {
		return nil, err
	}

	branch := domain.Branch{
		BranchID:  uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
		CreatedBy: actor.UserID,
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		logger.Warn("Failed to save branch", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID), slog.String("name", branch.Name))
	res := dto.ToBranchResponse(&branch, decimal.Zero, nil)
	return &res, nil
}

// ListBranches returns branches with their derived net totals and account
// summaries, ordered by name. STAFF only sees the home branch.
func (s *branchService) ListBranches(ctx context.Context, actor *domain.AuthUser) (*dto.ListBranchesResponse, error) {
	branchID, err := ScopeToBranch(actor, "")
	if err != nil {
		return nil, err
	}

	branches, err := s.branchRepo.ListBranches(ctx, branchID)
	if err != nil {
		return nil, err
	}

	branchIDs := make([]string, len(branches))
	for i, b := range branches {
		branchIDs[i] = b.BranchID
	}
	totals, err := s.branchRepo.SumBranchBalances(ctx, branchIDs)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, branchID)
	if err != nil {
		return nil, err
	}
	summaries := make(map[string][]dto.BranchAccountSummary, len(branches))
	for _, acc := range accounts {
		summaries[acc.BranchID] = append(summaries[acc.BranchID], dto.BranchAccountSummary{
			AccountID:   acc.AccountID,
			AccountType: acc.AccountType,
		})
	}

	res := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		total, ok := totals[branches[i].BranchID]
		if !ok {
			total = decimal.Zero
		}
		res[i] = dto.ToBranchResponse(&branches[i], total, summaries[branches[i].BranchID])
	}

	return &dto.ListBranchesResponse{Branches: res}, nil
}

// RenameBranch renames a branch. OWNER only.
func (s *branchService) RenameBranch(ctx context.Context, actor *domain.AuthUser, branchID string, req dto.RenameBranchRequest) (*dto.BranchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(actor, OpManage, ""); err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.RenameBranch(ctx, branchID, req.Name)
	if err != nil {
		logger.Warn("Failed to rename branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, err
	}

	totals, err := s.branchRepo.SumBranchBalances(ctx, []string{branchID})
	if err != nil {
		return nil, err
	}
	total, ok := totals[branchID]
	if !ok {
		total = decimal.Zero
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, branchID)
	if err != nil {
		return nil, err
	}
	accSummaries := make([]dto.BranchAccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		accSummaries = append(accSummaries, dto.BranchAccountSummary{
			AccountID:   acc.AccountID,
			AccountType: acc.AccountType,
		})
	}

	logger.Info("Branch renamed", slog.String("branch_id", branchID), slog.String("name", req.Name))
	res := dto.ToBranchResponse(branch, total, accSummaries)
	return &res, nil
}
