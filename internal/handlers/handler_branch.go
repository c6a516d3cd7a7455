package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// branchHandler handles HTTP requests for branches.
type branchHandler struct {
	branchService ports.BranchService
}

func newBranchHandler(branchService ports.BranchService) *branchHandler {
	return &branchHandler{branchService: branchService}
}

// createBranch godoc
// @Summary Create a branch
// @Description Creates a new branch. OWNER only; names are unique.
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Branch name already taken"
// @Router /branches [post]
// @Security BearerAuth
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, branch)
}

// listBranches godoc
// @Summary List branches
// @Description Lists branches with their derived net totals and account summaries. STAFF see only the home branch.
// @Tags branches
// @Produce json
// @Success 200 {object} dto.ListBranchesResponse
// @Router /branches [get]
// @Security BearerAuth
func (h *branchHandler) listBranches(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context(), actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// renameBranch godoc
// @Summary Rename a branch
// @Tags branches
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param branch body dto.RenameBranchRequest true "New name"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} map[string]string "Branch not found"
// @Failure 409 {object} map[string]string "Branch name already taken"
// @Router /branches/{branchID} [patch]
// @Security BearerAuth
func (h *branchHandler) renameBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var req dto.RenameBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for renameBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	branch, err := h.branchService.RenameBranch(c.Request.Context(), actorFromContext(c), branchID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Branch renamed", slog.String("branch_id", branchID))
	c.JSON(http.StatusOK, branch)
}

// registerBranchRoutes registers branch specific routes.
func registerBranchRoutes(group *gin.RouterGroup, branchService ports.BranchService) {
	handler := newBranchHandler(branchService)

	branches := group.Group("/branches")
	{
		branches.POST("", handler.createBranch)
		branches.GET("", handler.listBranches)
		branches.PATCH("/:branchID", handler.renameBranch)
	}
}
