package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// Catalog: GET /catalog?category=<slug>&featured=true
func (h *CatalogHandler) Catalog(c *gin.Context) {
	list, err := h.catalog.PublicCatalog(c.Request.Context(), c.Query("category"), c.Query("featured") == "true")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) UpsertProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.log, err)
		return
	}
	in, bad := req.ToInput()
	if len(bad) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid fields", bad))
		return
	}
	p, err := h.catalog.UpsertProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) AdminProducts(c *gin.Context) {
	list, err := h.catalog.AdminProducts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) UpsertCategory(c *gin.Context) {
	row := &models.Category{IsActive: true}
	id, ok := bindRow(c, h.log, row)
	if !ok {
		return
	}
	saved, err := h.catalog.UpsertCategory(c.Request.Context(), id, row)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// bindRow читает тело в row; поля, которых нет в запросе, сохраняют значения row.
func bindRow(c *gin.Context, log *zap.Logger, row any) (*uuid.UUID, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		badBody(c, log, err)
		return nil, false
	}
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		badBody(c, log, err)
		return nil, false
	}
	id, err := dto.ParseOptionalUUID(head.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid fields", []dto.FieldError{{Field: "id", Message: "must be a UUID", Tag: "invalid"}}))
		return nil, false
	}
	// id управляется отдельно, в теле строки он не нужен
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		badBody(c, log, err)
		return nil, false
	}
	delete(body, "id")
	delete(body, "created_at")
	delete(body, "updated_at")
	clean, _ := json.Marshal(body)
	if err := json.Unmarshal(clean, row); err != nil {
		badBody(c, log, err)
		return nil, false
	}
	return id, true
}

// ListHandler: публичный список справочника.
func ListHandler[T repository.CatalogEntity](repo repository.CatalogRepo[T], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := service.ListPublic(c.Request.Context(), repo)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func AdminListHandler[T repository.CatalogEntity](repo repository.CatalogRepo[T], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := service.ListAll(c.Request.Context(), repo)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UpsertHandler: newRow задаёт значения по умолчанию (is_active = true).
func UpsertHandler[T repository.CatalogEntity](repo repository.CatalogRepo[T], newRow func() *T, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		row := newRow()
		id, ok := bindRow(c, log, row)
		if !ok {
			return
		}
		saved, err := service.Upsert(c.Request.Context(), repo, id, row)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

func DeleteHandler[T repository.CatalogEntity](repo repository.CatalogRepo[T], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, dto.NewNotFoundError(service.ErrNotFound.Error()))
			return
		}
		if err := service.Delete(c.Request.Context(), repo, id); err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
