package handlers

import (
	"context"
	"net/http"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConfigService interface {
	Get(ctx context.Context) (*models.SiteConfig, error)
	Update(ctx context.Context, patch service.SiteConfigPatch) (*models.SiteConfig, error)
}

type ConfigHandler struct {
	cfg ConfigService
	log *zap.Logger
}

func NewConfigHandler(cfg ConfigService, log *zap.Logger) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, log: log}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	conf, err := h.cfg.Get(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req dto.SiteConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	conf, err := h.cfg.Update(c.Request.Context(), req.ToPatch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}
