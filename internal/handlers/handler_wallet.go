package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// walletHandler handles HTTP requests for the pledger wallet and its
// collateral locks.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	dispatcher    portssvc.EventDispatcherFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, d portssvc.EventDispatcherFacade) *walletHandler {
	return &walletHandler{walletService: ws, dispatcher: d}
}

// registerWalletRoutes registers routes related to the pledger wallet.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade, d portssvc.EventDispatcherFacade) {
	h := newWalletHandler(ws, d)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.getWallet)
		wallet.POST("/topup", h.topUp)
		wallet.POST("/withdraw", h.withdraw)
		wallet.POST("/locks", h.lockFunds)
		wallet.DELETE("/locks/:creditID", h.unlockFunds)
	}
}

// getWallet godoc
// @Summary Get the pledger wallet
// @Description Returns balance, locked total, available amount and the active locks
// @Tags wallet
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {object} dto.WalletResponse
// @Failure 500 {object} map[string]string "Failed to retrieve wallet"
// @Router /profiles/{profileID}/wallet [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to get wallet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet"})
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

type walletAmountOp func(ctx context.Context, profile domain.Profile, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error)

func (h *walletHandler) amountOp(c *gin.Context, op walletAmountOp, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wallet "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, events, err := op(c.Request.Context(), profile, req.AmountUSD)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Wallet "+action+" rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Wallet "+action+" failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Wallet updated", slog.String("action", action), slog.String("balance_usd", wallet.BalanceUSD.String()))
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// topUp godoc
// @Summary Top up the pledger wallet
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   amount body dto.WalletAmountRequest true "USD amount"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /profiles/{profileID}/wallet/topup [post]
func (h *walletHandler) topUp(c *gin.Context) {
	h.amountOp(c, h.walletService.TopUp, "top up")
}

// withdraw godoc
// @Summary Withdraw from the pledger wallet
// @Description Withdraws against the available balance; locked collateral cannot leave
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   amount body dto.WalletAmountRequest true "USD amount"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient available balance"
// @Router /profiles/{profileID}/wallet/withdraw [post]
func (h *walletHandler) withdraw(c *gin.Context) {
	h.amountOp(c, h.walletService.Withdraw, "withdraw")
}

// lockFunds godoc
// @Summary Lock collateral against a credit
// @Description Reserves part of the available balance; the balance itself is not debited
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   lock body dto.LockFundsRequest true "Lock details"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Funds already locked for credit"
// @Failure 422 {object} map[string]string "Insufficient available balance"
// @Router /profiles/{profileID}/wallet/locks [post]
func (h *walletHandler) lockFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	var req dto.LockFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LockFunds", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, events, err := h.walletService.LockFunds(c.Request.Context(), profile, req.CreditID, req.AmountUSD)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate collateral lock rejected", slog.String("credit_id", req.CreditID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Collateral lock rejected", slog.String("credit_id", req.CreditID), slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to lock funds", slog.String("credit_id", req.CreditID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock funds"})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Collateral locked", slog.String("credit_id", req.CreditID))
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// unlockFunds godoc
// @Summary Release a collateral lock
// @Description Removes the reservation for a credit; the balance is unchanged
// @Tags wallet
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   creditID path string true "Credit ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "No lock found for credit"
// @Router /profiles/{profileID}/wallet/locks/{creditID} [delete]
func (h *walletHandler) unlockFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}
	creditID := c.Param("creditID")

	wallet, events, err := h.walletService.UnlockFunds(c.Request.Context(), profile, creditID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No lock found for credit"})
		} else {
			logger.Error("Failed to unlock funds", slog.String("credit_id", creditID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock funds"})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Collateral released", slog.String("credit_id", creditID))
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}
