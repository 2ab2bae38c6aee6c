package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// faqRepo: справочник FAQ в памяти.
type faqRepo struct {
	rows map[uuid.UUID]models.FAQ
}

func (r *faqRepo) Create(_ context.Context, row *models.FAQ) error {
	row.ID = uuid.New()
	r.rows[row.ID] = *row
	return nil
}

func (r *faqRepo) Update(_ context.Context, id uuid.UUID, row *models.FAQ) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	row.ID = id
	r.rows[id] = *row
	return 1, nil
}

func (r *faqRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FAQ, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *faqRepo) List(_ context.Context, onlyActive bool) ([]models.FAQ, error) {
	out := []models.FAQ{}
	for _, row := range r.rows {
		if onlyActive && !row.IsActive {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *faqRepo) CountActive(ctx context.Context) (int64, error) {
	list, _ := r.List(ctx, true)
	return int64(len(list)), nil
}

func (r *faqRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func asStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithUserID(c.Request.Context(), uuid.New()))
		c.Next()
	}
}

func newFAQEngine(repo *faqRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	newFAQ := func() *models.FAQ { return &models.FAQ{IsActive: true} }

	r := gin.New()
	r.GET("/faqs", handlers.ListHandler[models.FAQ](repo, log))
	admin := r.Group("/admin", asStaff())
	admin.GET("/faqs", handlers.AdminListHandler[models.FAQ](repo, log))
	admin.POST("/faqs", handlers.UpsertHandler[models.FAQ](repo, newFAQ, log))
	admin.PUT("/faqs", handlers.UpsertHandler[models.FAQ](repo, newFAQ, log))
	admin.DELETE("/faqs/:id", handlers.DeleteHandler[models.FAQ](repo, log))
	r.POST("/public-faqs", handlers.UpsertHandler[models.FAQ](repo, newFAQ, log))
	return r
}

func TestFAQCrud(t *testing.T) {
	repo := &faqRepo{rows: map[uuid.UUID]models.FAQ{}}
	r := newFAQEngine(repo)

	w := doJSON(r, http.MethodPost, "/admin/faqs", map[string]any{"question": "¿Hacen envíos?", "answer": "Sí, en CABA", "order": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.FAQ
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsActive, "is_active defaults to true")
	assert.Equal(t, 2, created.SortOrder)

	w = doJSON(r, http.MethodPut, "/admin/faqs", map[string]any{"id": created.ID.String(), "question": "¿Hacen envíos?", "answer": "Sí", "is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/faqs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/admin/faqs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.FAQ
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Sí", all[0].Answer)

	w = doJSON(r, http.MethodDelete, "/admin/faqs/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/admin/faqs/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFAQUpsert_Errors(t *testing.T) {
	repo := &faqRepo{rows: map[uuid.UUID]models.FAQ{}}
	r := newFAQEngine(repo)

	w := doJSON(r, http.MethodPost, "/admin/faqs", map[string]any{"question": "solo pregunta"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing fields: answer")

	w = doJSON(r, http.MethodPut, "/admin/faqs", map[string]any{"id": "nope", "question": "q", "answer": "a"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/admin/faqs", map[string]any{"id": uuid.NewString(), "question": "q", "answer": "a"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/public-faqs", map[string]any{"question": "q", "answer": "a"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, repo.rows)
}
