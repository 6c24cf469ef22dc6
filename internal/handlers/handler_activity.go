package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// activityHandler serves the pledger's read-only activity log.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers routes related to the pledger activity log.
func registerActivityRoutes(rg *gin.RouterGroup, as portssvc.ActivitySvcFacade) {
	h := newActivityHandler(as)
	rg.GET("/activities", h.listActivities)
}

// listActivities godoc
// @Summary List pledger activities
// @Description Returns the USD activity log most recent first
// @Tags activities
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {array} dto.ActivityResponse
// @Failure 500 {object} map[string]string "Failed to list activities"
// @Router /profiles/{profileID}/activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	activities, err := h.activityService.ListActivities(c.Request.Context(), profile)
	if err != nil {
		logger.Error("Failed to list activities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}
