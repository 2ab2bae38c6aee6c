package handlers

import (
	"net/http"

	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dash *service.DashboardService
	log  *zap.Logger
}

func NewDashboardHandler(dash *service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dash: dash, log: log}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.dash.Get(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
