package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOrderService struct {
	CreateOrderFunc  func(ctx context.Context, in service.OrderInput) (*service.CreatedOrder, error)
	GetOrderFunc     func(ctx context.Context, id uuid.UUID) (*service.OrderDetail, error)
	ListOrdersFunc   func(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error)
	UpdateOrderFunc  func(ctx context.Context, id uuid.UUID, in service.UpdateOrderInput) (*models.Order, error)
	SendNoteFunc     func(ctx context.Context, id uuid.UUID, note string) (*service.NoteResult, error)
	FollowUpLinkFunc func(ctx context.Context, id uuid.UUID) (*string, error)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in service.OrderInput) (*service.CreatedOrder, error) {
	return m.CreateOrderFunc(ctx, in)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*service.OrderDetail, error) {
	return m.GetOrderFunc(ctx, id)
}

func (m *MockOrderService) ListOrders(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error) {
	return m.ListOrdersFunc(ctx, f)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, in service.UpdateOrderInput) (*models.Order, error) {
	return m.UpdateOrderFunc(ctx, id, in)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, note string) (*models.Order, error) {
	st := string(status)
	return m.UpdateOrderFunc(ctx, id, service.UpdateOrderInput{Status: &st, StatusNotes: note})
}

func (m *MockOrderService) UpdateItems(ctx context.Context, id uuid.UUID, items []service.ItemInput) (*models.Order, error) {
	return m.UpdateOrderFunc(ctx, id, service.UpdateOrderInput{Items: &items})
}

func (m *MockOrderService) AddNote(ctx context.Context, id uuid.UUID, note, _ string) (*models.OrderNote, error) {
	res, err := m.SendNoteFunc(ctx, id, note)
	if err != nil {
		return nil, err
	}
	return res.Note, nil
}

func (m *MockOrderService) SendNote(ctx context.Context, id uuid.UUID, note string) (*service.NoteResult, error) {
	return m.SendNoteFunc(ctx, id, note)
}

func (m *MockOrderService) FollowUpLink(ctx context.Context, id uuid.UUID) (*string, error) {
	return m.FollowUpLinkFunc(ctx, id)
}

func newOrderEngine(svc service.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewOrderHandler(svc, zap.NewNop())
	r.POST("/orders", h.Create)
	r.GET("/admin/orders", h.List)
	r.GET("/admin/orders/:id", h.Get)
	r.PUT("/admin/orders/:id", h.Update)
	r.POST("/admin/orders/:id/notes", h.AddNote)
	r.GET("/admin/orders/:id/whatsapp", h.FollowUp)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_Created(t *testing.T) {
	var got service.OrderInput
	link := "https://wa.me/5491111112222?text=hola"
	svc := &MockOrderService{CreateOrderFunc: func(_ context.Context, in service.OrderInput) (*service.CreatedOrder, error) {
		got = in
		built, err := service.BuildOrder(in)
		if err != nil {
			return nil, err
		}
		return &service.CreatedOrder{
			Order: &models.Order{
				ID:              uuid.New(),
				OrderNumber:     1000,
				CustomerName:    in.CustomerName,
				Items:           built.Lines,
				Subtotal:        built.Subtotal,
				Total:           built.Total,
				WhatsappMessage: built.WhatsappMessage,
				Status:          models.OrderStatusPending,
			},
			WhatsappURL: &link,
		}, nil
	}}
	r := newOrderEngine(svc)

	// цены и количества приходят и числами, и строками
	body := `{
		"customer_name": "Luis",
		"customer_phone": "11 4444 3333",
		"delivery_type": "entrega",
		"zone": "Belgrano",
		"payment_method": "efectivo",
		"items": [
			{"name": "Empanadas", "price": "1200", "qty": 3},
			{"name": "Tabla", "price": 4500, "qty": "abc"}
		]
	}`
	w := doJSON(r, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, got.Items, 2)
	assert.Nil(t, got.Items[1].Qty)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(1200)))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1000), resp["order_number"])
	assert.Equal(t, "8100", resp["total"])
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, link, resp["whatsapp_url"])
	assert.Contains(t, resp["whatsapp_message"], "*Total estimado: $8.100*")
}

func TestCreateOrder_ValidationError(t *testing.T) {
	svc := &MockOrderService{CreateOrderFunc: func(_ context.Context, in service.OrderInput) (*service.CreatedOrder, error) {
		_, err := service.BuildOrder(in)
		return nil, err
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodPost, "/orders", map[string]any{
		"customer_name":  "Ana",
		"customer_phone": "1155551234",
		"delivery_type":  "entrega",
		"payment_method": "efectivo",
		"items":          []map[string]any{{"name": "Box", "price": 100, "qty": 1}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing fields: zone", resp["error"])
	assert.Equal(t, "validation_error", resp["code"])
}

func TestCreateOrder_BrokenBody(t *testing.T) {
	r := newOrderEngine(&MockOrderService{})
	w := doJSON(r, http.MethodPost, "/orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_StorageErrorIs500(t *testing.T) {
	svc := &MockOrderService{CreateOrderFunc: func(context.Context, service.OrderInput) (*service.CreatedOrder, error) {
		return nil, &service.PersistenceError{Op: "create order", Err: errors.New("relation \"orders\" does not exist")}
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodPost, "/orders", map[string]any{"customer_name": "x"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `relation \"orders\" does not exist`)
}

func TestListOrders(t *testing.T) {
	var got service.ListFilter
	svc := &MockOrderService{ListOrdersFunc: func(_ context.Context, f service.ListFilter) ([]models.Order, int64, error) {
		got = f
		return nil, 0, nil
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodGet, "/admin/orders?status=ready&limit=10&offset=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ListFilter{Status: "ready", Limit: 10, Offset: 5}, got)
	assert.JSONEq(t, `{"orders":[],"total":0}`, w.Body.String())
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &MockOrderService{GetOrderFunc: func(context.Context, uuid.UUID) (*service.OrderDetail, error) {
		return nil, service.ErrOrderNotFound
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodGet, "/admin/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/orders/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrder_PassesPatch(t *testing.T) {
	id := uuid.New()
	var got service.UpdateOrderInput
	svc := &MockOrderService{UpdateOrderFunc: func(_ context.Context, gotID uuid.UUID, in service.UpdateOrderInput) (*models.Order, error) {
		require.Equal(t, id, gotID)
		got = in
		return &models.Order{ID: id, Status: models.OrderStatusReady}, nil
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodPut, "/admin/orders/"+id.String(), map[string]any{"status": "ready", "status_notes": "listo para retirar"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, got.Status)
	assert.Equal(t, "ready", *got.Status)
	assert.Equal(t, "listo para retirar", got.StatusNotes)
	assert.Nil(t, got.Items)
	assert.Nil(t, got.CustomerName)
}

func TestAddNote_NullLink(t *testing.T) {
	svc := &MockOrderService{SendNoteFunc: func(_ context.Context, id uuid.UUID, note string) (*service.NoteResult, error) {
		return &service.NoteResult{Note: &models.OrderNote{OrderID: id, Note: note}}, nil
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodPost, "/admin/orders/"+uuid.NewString()+"/notes", map[string]any{"note": "hola"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	v, ok := resp["whatsapp_url"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestFollowUp_Unauthorized(t *testing.T) {
	svc := &MockOrderService{FollowUpLinkFunc: func(context.Context, uuid.UUID) (*string, error) {
		return nil, service.ErrUnauthorized
	}}
	r := newOrderEngine(svc)

	w := doJSON(r, http.MethodGet, "/admin/orders/"+uuid.NewString()+"/whatsapp", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
