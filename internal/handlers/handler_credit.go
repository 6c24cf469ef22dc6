package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// creditHandler handles HTTP requests for the credit lifecycle.
type creditHandler struct {
	creditService      portssvc.CreditSvcFacade
	transactionService portssvc.TransactionSvcFacade
	dispatcher         portssvc.EventDispatcherFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade, ts portssvc.TransactionSvcFacade, d portssvc.EventDispatcherFacade) *creditHandler {
	return &creditHandler{
		creditService:      cs,
		transactionService: ts,
		dispatcher:         d,
	}
}

// registerCreditRoutes registers routes related to credits.
func registerCreditRoutes(rg *gin.RouterGroup, cs portssvc.CreditSvcFacade, ts portssvc.TransactionSvcFacade, d portssvc.EventDispatcherFacade) {
	h := newCreditHandler(cs, ts, d)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("", h.listCredits)
		credits.POST("/preview", h.previewLoan)
		credits.POST("/approve-all", h.approveAll)
		credits.POST("/decline-all", h.declineAll)
		credits.GET("/:creditID", h.getCredit)
		credits.POST("/:creditID/approve", h.approveCredit)
		credits.POST("/:creditID/decline", h.declineCredit)
		credits.POST("/:creditID/payments", h.recordPayment)
	}
}

// createCredit godoc
// @Summary Create a credit request
// @Description Submits a new pending credit request with computed loan terms
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   credit body dto.CreateCreditRequest true "Credit request details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create credit"
// @Router /profiles/{profileID}/credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	credit, events, err := h.creditService.CreateRequest(c.Request.Context(), profile, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating credit", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create credit in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create credit"})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Credit request created", slog.String("credit_id", credit.CreditID))
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// listCredits godoc
// @Summary List credits
// @Description Lists all credits for the profile, most recent first
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {array} dto.CreditResponse
// @Failure 500 {object} map[string]string "Failed to list credits"
// @Router /profiles/{profileID}/credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	credits, err := h.creditService.ListCredits(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to list credits", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credits"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListCreditResponse(credits))
}

// getCredit godoc
// @Summary Get a credit by ID
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   creditID path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} map[string]string "Credit not found"
// @Router /profiles/{profileID}/credits/{creditID} [get]
func (h *creditHandler) getCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}
	creditID := c.Param("creditID")

	credit, err := h.creditService.GetCreditByID(c.Request.Context(), profile, creditID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		} else {
			logger.Error("Failed to get credit", slog.String("credit_id", creditID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve credit"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

type creditTransition func(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, []domain.Event, error)

func (h *creditHandler) transition(c *gin.Context, op creditTransition, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}
	creditID := c.Param("creditID")

	credit, events, err := op(c.Request.Context(), profile, creditID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Credit transition rejected", slog.String("credit_id", creditID), slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to transition credit", slog.String("credit_id", creditID), slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " credit"})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Credit transitioned", slog.String("credit_id", creditID), slog.String("status", string(credit.Status)))
	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

// approveCredit godoc
// @Summary Approve a pending credit
// @Description Activates a pending or reviewing credit, locking collateral and disbursing the loan
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   creditID path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} map[string]string "Credit not found"
// @Failure 409 {object} map[string]string "Credit not approvable"
// @Router /profiles/{profileID}/credits/{creditID}/approve [post]
func (h *creditHandler) approveCredit(c *gin.Context) {
	h.transition(c, h.creditService.Approve, "approve")
}

// declineCredit godoc
// @Summary Decline a pending credit
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   creditID path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} map[string]string "Credit not found"
// @Failure 409 {object} map[string]string "Credit not declinable"
// @Router /profiles/{profileID}/credits/{creditID}/decline [post]
func (h *creditHandler) declineCredit(c *gin.Context) {
	h.transition(c, h.creditService.Decline, "decline")
}

// approveAll godoc
// @Summary Approve every pending credit
// @Description Best-effort bulk approval; failures are reported per credit
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {object} dto.BulkActionResult
// @Failure 500 {object} map[string]string "Failed to approve credits"
// @Router /profiles/{profileID}/credits/approve-all [post]
func (h *creditHandler) approveAll(c *gin.Context) {
	h.bulkTransition(c, h.creditService.ApproveAll, "approve")
}

// declineAll godoc
// @Summary Decline every pending credit
// @Description Best-effort bulk decline; failures are reported per credit
// @Tags credits
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {object} dto.BulkActionResult
// @Failure 500 {object} map[string]string "Failed to decline credits"
// @Router /profiles/{profileID}/credits/decline-all [post]
func (h *creditHandler) declineAll(c *gin.Context) {
	h.bulkTransition(c, h.creditService.DeclineAll, "decline")
}

type bulkTransition func(ctx context.Context, profile domain.Profile) (*dto.BulkActionResult, []domain.Event, error)

func (h *creditHandler) bulkTransition(c *gin.Context, op bulkTransition, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	result, events, err := op(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Bulk credit transition failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " credits"})
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Bulk credit transition done", slog.String("action", action), slog.Int("succeeded", len(result.Succeeded)), slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, result)
}

// recordPayment godoc
// @Summary Record a repayment
// @Description Debits the borrower ledger and applies the payment to the active credit
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   creditID path string true "Credit ID"
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Credit not found"
// @Failure 409 {object} map[string]string "Credit not active"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /profiles/{profileID}/credits/{creditID}/payments [post]
func (h *creditHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}
	creditID := c.Param("creditID")

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, credit, events, err := h.transactionService.AddLoanRepayment(c.Request.Context(), profile, creditID, req.AmountNGN, req.Type, req.Reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payment rejected", slog.String("credit_id", creditID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Payment rejected for insufficient funds", slog.String("credit_id", creditID), slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record payment", slog.String("credit_id", creditID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}
	h.dispatcher.Dispatch(c.Request.Context(), profile, events)

	logger.Info("Payment recorded", slog.String("credit_id", creditID), slog.String("status", string(credit.Status)))

	resp := dto.PaymentResponse{Credit: dto.ToCreditResponse(credit)}
	if n := len(credit.PaymentHistory); n > 0 {
		resp.Payment = dto.ToPaymentRecordResponse(&credit.PaymentHistory[n-1])
	}
	if txn != nil {
		t := dto.ToTransactionResponse(txn)
		resp.Transaction = &t
	}
	c.JSON(http.StatusOK, resp)
}

// previewLoan godoc
// @Summary Preview loan terms
// @Description Computes loan terms for the request form without creating anything
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Param   preview body dto.LoanPreviewRequest true "Preview inputs"
// @Success 200 {object} dto.LoanPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /profiles/{profileID}/credits/preview [post]
func (h *creditHandler) previewLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.creditService.Preview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute loan preview", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute preview"})
		}
		return
	}
	c.JSON(http.StatusOK, preview)
}
