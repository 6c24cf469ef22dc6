package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// demoHandler resets demo profiles back to their seed state.
type demoHandler struct {
	demoService portssvc.DemoSvcFacade
}

func newDemoHandler(ds portssvc.DemoSvcFacade) *demoHandler {
	return &demoHandler{demoService: ds}
}

// registerDemoRoutes registers the profile reset route.
func registerDemoRoutes(rg *gin.RouterGroup, ds portssvc.DemoSvcFacade) {
	h := newDemoHandler(ds)
	rg.POST("/reset", h.resetProfile)
}

// resetProfile godoc
// @Summary Reset a demo profile
// @Description Clears every ledger for the profile and restarts all ID counters
// @Tags demo
// @Produce  json
// @Param   profileID path string true "Demo profile" Enums(fresh, active)
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to reset profile"
// @Router /profiles/{profileID}/reset [post]
func (h *demoHandler) resetProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile not resolved"})
		return
	}

	if err := h.demoService.ResetProfile(c.Request.Context(), profile); err != nil {
		logger.Error("Failed to reset profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset", "profile": string(profile)})
}
