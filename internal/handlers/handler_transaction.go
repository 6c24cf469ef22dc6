package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// transactionHandler handles HTTP requests for the borrower NGN ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	dispatcher         portssvc.EventDispatcherFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, d portssvc.EventDispatcherFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, dispatcher: d}
}

// registerTransactionRoutes registers routes related to the borrower ledger.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, d portssvc.EventDispatcherFacade) {
	h := newTransactionHandler(ts, d)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/balance", h.getBalance)
		txns.POST("/cash", h.addCashTransaction)
		txns.POST("/transfer", h.addTransferTransaction)
		txns.GET("/:transactionID", h.getTransaction)
	}
}

// listTransactions godoc
// @Summary List borrower transactions
// @Description Returns the NGN ledger most recent first
// @Tags transactions
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /profiles/{profileID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// getBalance godoc
// @Summary Get the borrower balance
// @Description Returns the running NGN balance of the ledger
// @Tags transactions
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /profiles/{profileID}/transactions/balance [get]
func (h *transactionHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	balance, err := h.transactionService.CurrentBalance(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to compute balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{BalanceNGN: balance})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /profiles/{profileID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), profile, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// addCashTransaction godoc
// @Summary Record a deposit or withdrawal
// @Description Appends a cash movement to the borrower ledger; withdrawals are validated against the balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   transaction body dto.CashTransactionRequest true "Cash movement"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /profiles/{profileID}/transactions/cash [post]
func (h *transactionHandler) addCashTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	var req dto.CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddCashTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, events, err := h.transactionService.AddCashTransaction(c.Request.Context(), profile, req.Category(), req.AmountNGN)
	if err != nil {
		h.writeLedgerError(c, logger, err, "record cash transaction")
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Cash transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("category", string(txn.Category)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// addTransferTransaction godoc
// @Summary Record a transfer in or out
// @Description Appends a transfer to the borrower ledger; outgoing transfers are validated against the balance
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   transaction body dto.TransferTransactionRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /profiles/{profileID}/transactions/transfer [post]
func (h *transactionHandler) addTransferTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	var req dto.TransferTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransferTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, events, err := h.transactionService.AddTransferTransaction(c.Request.Context(), profile, req.Category(), req.AmountNGN, req.Counterparty)
	if err != nil {
		h.writeLedgerError(c, logger, err, "record transfer")
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Transfer recorded", slog.String("transaction_id", txn.TransactionID), slog.String("category", string(txn.Category)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) writeLedgerError(c *gin.Context, logger *slog.Logger, err error, action string) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInsufficientFunds) {
		logger.Warn("Ledger debit rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
