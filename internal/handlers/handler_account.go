package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the account registry.
type accountHandler struct {
	accountService ports.AccountService
	ledgerService  ports.LedgerService
}

func newAccountHandler(accountService ports.AccountService, ledgerService ports.LedgerService) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a CASH or BANK_TRANSFER account in a branch. OWNER only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Branch not found"
// @Router /accounts [post]
// @Security BearerAuth
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("branch_id", account.BranchID))
	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts with derived balances. STAFF see only the home branch.
// @Tags accounts
// @Produce json
// @Param branchId query string false "Restrict to one branch"
// @Success 200 {object} dto.ListAccountsResponse
// @Router /accounts [get]
// @Security BearerAuth
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), actorFromContext(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Derives the balance as the sum of the account's ledger entries.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Router /accounts/{accountID}/balance [get]
// @Security BearerAuth
func (h *accountHandler) getBalance(c *gin.Context) {
	accountID := c.Param("accountID")

	balance, err := h.ledgerService.BalanceOf(c.Request.Context(), actorFromContext(c), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive. Its history and balance remain readable; new entries are rejected.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [delete]
// @Security BearerAuth
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	if err := h.accountService.DeactivateAccount(c.Request.Context(), actorFromContext(c), accountID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers account specific routes.
func registerAccountRoutes(group *gin.RouterGroup, accountService ports.AccountService, ledgerService ports.LedgerService) {
	handler := newAccountHandler(accountService, ledgerService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", handler.createAccount)
		accounts.GET("", handler.listAccounts)
		accounts.GET("/:accountID/balance", handler.getBalance)
		accounts.DELETE("/:accountID", handler.deactivateAccount)
	}
}
