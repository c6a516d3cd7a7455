package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cashbookvn/cashbook_backend/internal/core/ports"
	"github.com/cashbookvn/cashbook_backend/internal/dto"
	"github.com/cashbookvn/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler exposes the ledger write and read operations.
type transactionHandler struct {
	ledgerService ports.LedgerService
}

func newTransactionHandler(ledgerService ports.LedgerService) *transactionHandler {
	return &transactionHandler{ledgerService: ledgerService}
}

// deposit godoc
// @Summary Record a deposit
// @Description Appends one positive ledger entry to the account.
// @Tags transactions
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or inactive account"
// @Failure 403 {object} map[string]string "Outside the caller's branch"
// @Router /transactions/deposit [post]
// @Security BearerAuth
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.ledgerService.Deposit(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// withdraw godoc
// @Summary Record a withdrawal
// @Description Appends one negative ledger entry. OWNER only; fails when the balance does not cover the amount.
// @Tags transactions
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or insufficient funds"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /transactions/withdraw [post]
// @Security BearerAuth
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.ledgerService.Withdraw(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// orderPayment godoc
// @Summary Pay an order from an account
// @Description Appends one negative ORDER_PAYMENT entry carrying the order id in its metadata.
// @Tags transactions
// @Accept json
// @Produce json
// @Param payment body dto.OrderPaymentRequest true "Order payment details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or insufficient funds"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /transactions/order-payment [post]
// @Security BearerAuth
func (h *transactionHandler) orderPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for orderPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.ledgerService.OrderPayment(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Atomically appends a debit leg, a credit leg and the link tying them together. Cross-branch moves require allowCrossBranch.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid amount, insufficient funds, or cross-branch without opt-in"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /transactions/transfer [post]
// @Security BearerAuth
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	res, err := h.ledgerService.Transfer(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists entries newest first with optional filters. STAFF listings are pinned to the home branch.
// @Tags transactions
// @Produce json
// @Param branchId query string false "Branch filter"
// @Param accountId query string false "Account filter"
// @Param userId query string false "Acting user filter"
// @Param type query string false "Entry type filter"
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
// @Security BearerAuth
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	res, err := h.ledgerService.ListTransactions(c.Request.Context(), actorFromContext(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// registerTransactionRoutes registers ledger specific routes.
func registerTransactionRoutes(group *gin.RouterGroup, ledgerService ports.LedgerService) {
	handler := newTransactionHandler(ledgerService)

	transactions := group.Group("/transactions")
	{
		transactions.POST("/deposit", handler.deposit)
		transactions.POST("/withdraw", handler.withdraw)
		transactions.POST("/order-payment", handler.orderPayment)
		transactions.POST("/transfer", handler.transfer)
		transactions.GET("", handler.listTransactions)
	}
}
