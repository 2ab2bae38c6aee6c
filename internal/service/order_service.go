package service

import (
	"context"
	"strings"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const initialEventNote = "Orden creada"

type orderService struct {
	repo             *repository.Repository
	events           EventBus
	merchantWhatsapp string
	log              *zap.Logger
	now              func() time.Time
}

// NewOrderService: events может быть nil, тогда уведомления не публикуются.
func NewOrderService(repo *repository.Repository, events EventBus, merchantWhatsapp string, log *zap.Logger) OrderService {
	return &orderService{
		repo:             repo,
		events:           events,
		merchantWhatsapp: merchantWhatsapp,
		log:              log,
		now:              time.Now,
	}
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func linkPtr(phone, message string) *string {
	link, ok := BuildMessagingLink(phone, message)
	if !ok {
		return nil
	}
	return &link
}

func (s *orderService) CreateOrder(ctx context.Context, in OrderInput) (*CreatedOrder, error) {
	built, err := BuildOrder(in)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   optString(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		DeliveryType:    models.DeliveryType(in.DeliveryType),
		PaymentMethod:   models.PaymentMethod(in.PaymentMethod),
		Items:           built.Lines,
		Subtotal:        built.Subtotal,
		Total:           built.Total,
		Notes:           optString(in.Notes),
		WhatsappMessage: built.WhatsappMessage,
		Status:          models.OrderStatusPending,
	}
	if order.DeliveryType == models.DeliveryTypeDelivery {
		order.Zone = optString(in.Zone)
	}

	if err := s.repo.Orders.Create(ctx, order); err != nil {
		return nil, persistErr("create order", err)
	}

	// Заказ уже создан: без начального события он остаётся валидным, статус хранится в самой строке.
	ev := &models.OrderEvent{OrderID: order.ID, Status: models.OrderStatusPending, Notes: initialEventNote}
	if err := s.repo.OrderEvents.Create(ctx, ev); err != nil {
		s.log.Warn("initial order event not stored",
			zap.String("order_id", order.ID.String()),
			zap.Int64("order_number", order.OrderNumber),
			zap.Error(err))
	}

	s.publishCreated(ctx, order)

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Int64("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()))

	return &CreatedOrder{
		Order:       order,
		WhatsappURL: linkPtr(s.merchantWhatsapp, order.WhatsappMessage),
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	events, err := s.repo.OrderEvents.ListByOrder(ctx, id)
	if err != nil {
		return nil, persistErr("list order events", err)
	}
	notes, err := s.repo.OrderNotes.ListByOrder(ctx, id)
	if err != nil {
		return nil, persistErr("list order notes", err)
	}
	return &OrderDetail{Order: ord, Events: events, Notes: notes}, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}

	rf := repository.OrderListFilter{Limit: f.Limit, Offset: f.Offset}
	if st := strings.TrimSpace(f.Status); st != "" && st != "all" {
		status := models.OrderStatus(st)
		if !status.Valid() {
			return nil, 0, &ValidationError{Invalid: []string{"status"}}
		}
		rf.Status = &status
	}
	if rf.Limit <= 0 {
		rf.Limit = 50
	}
	if rf.Offset < 0 {
		rf.Offset = 0
	}

	list, total, err := s.repo.Orders.List(ctx, rf)
	if err != nil {
		return nil, 0, persistErr("list orders", err)
	}
	return list, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, note string) (*models.Order, error) {
	st := string(status)
	return s.UpdateOrder(ctx, id, UpdateOrderInput{Status: &st, StatusNotes: note})
}

func (s *orderService) UpdateItems(ctx context.Context, id uuid.UUID, items []ItemInput) (*models.Order, error) {
	return s.UpdateOrder(ctx, id, UpdateOrderInput{Items: &items})
}

// UpdateOrder применяет частичное изменение. Переходы между статусами не ограничены:
// сотрудник может вернуть заказ назад. Каждый присланный статус добавляет событие.
func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, in UpdateOrderInput) (*models.Order, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	cur, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if cur == nil {
		return nil, ErrOrderNotFound
	}

	fields, status, err := s.collectUpdate(cur, in)
	if err != nil {
		return nil, err
	}
	fields["updated_at"] = s.now()

	if _, err := s.repo.Orders.UpdateFields(ctx, id, fields); err != nil {
		return nil, persistErr("update order", err)
	}

	if status != nil {
		ev := &models.OrderEvent{OrderID: id, Status: *status, Notes: in.StatusNotes}
		if err := s.repo.OrderEvents.Create(ctx, ev); err != nil {
			return nil, persistErr("append order event", err)
		}
	}

	updated, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	if status != nil {
		s.publishStatusChanged(ctx, updated, in.StatusNotes)
	}
	return updated, nil
}

// collectUpdate проверяет патч относительно текущего заказа и возвращает колонки для UPDATE.
func (s *orderService) collectUpdate(cur *models.Order, in UpdateOrderInput) (map[string]any, *models.OrderStatus, error) {
	ve := &ValidationError{}
	fields := map[string]any{}

	if in.CustomerName != nil {
		if strings.TrimSpace(*in.CustomerName) == "" {
			ve.Missing = append(ve.Missing, "customer_name")
		}
		fields["customer_name"] = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerPhone != nil {
		if strings.TrimSpace(*in.CustomerPhone) == "" {
			ve.Missing = append(ve.Missing, "customer_phone")
		}
		fields["customer_phone"] = strings.TrimSpace(*in.CustomerPhone)
	}
	if in.CustomerEmail != nil {
		fields["customer_email"] = optString(*in.CustomerEmail)
	}
	if in.Notes != nil {
		fields["notes"] = optString(*in.Notes)
	}

	delivery := cur.DeliveryType
	if in.DeliveryType != nil {
		delivery = models.DeliveryType(*in.DeliveryType)
		if !delivery.Valid() {
			ve.Invalid = append(ve.Invalid, "delivery_type")
		}
		fields["delivery_type"] = string(delivery)
	}
	zone := cur.Zone
	if in.Zone != nil {
		zone = optString(*in.Zone)
		fields["zone"] = zone
	}
	if (in.DeliveryType != nil || in.Zone != nil) && delivery == models.DeliveryTypeDelivery && zone == nil {
		ve.Missing = append(ve.Missing, "zone")
	}
	// Для самовывоза зона не хранится, как и при создании.
	if (in.DeliveryType != nil || in.Zone != nil) && delivery == models.DeliveryTypePickup {
		fields["zone"] = nil
	}

	if in.PaymentMethod != nil {
		pm := models.PaymentMethod(*in.PaymentMethod)
		if !pm.Valid() {
			ve.Invalid = append(ve.Invalid, "payment_method")
		}
		fields["payment_method"] = string(pm)
	}

	if in.Items != nil {
		if len(*in.Items) == 0 {
			ve.Missing = append(ve.Missing, "items")
		} else if !itemsPriceable(*in.Items) {
			ve.Invalid = append(ve.Invalid, "items")
		}
		lines := NormalizeItems(*in.Items)
		subtotal, total := PriceItems(lines)
		fields["items"] = lines
		fields["subtotal"] = subtotal
		fields["total"] = total
	}

	var status *models.OrderStatus
	if in.Status != nil {
		st := models.OrderStatus(strings.TrimSpace(*in.Status))
		if !st.Valid() {
			ve.Invalid = append(ve.Invalid, "status")
		}
		fields["status"] = string(st)
		status = &st
	}

	if !ve.empty() {
		return nil, nil, ve
	}
	return fields, status, nil
}

func (s *orderService) AddNote(ctx context.Context, id uuid.UUID, note, createdBy string) (*models.OrderNote, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, &ValidationError{Missing: []string{"note"}}
	}

	ok, err := s.repo.Orders.Exists(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	n := &models.OrderNote{OrderID: id, Note: note, CreatedBy: optString(createdBy)}
	if err := s.repo.OrderNotes.Create(ctx, n); err != nil {
		return nil, persistErr("add order note", err)
	}
	return n, nil
}

// SendNote добавляет заметку от имени текущего сотрудника и готовит ссылку для клиента.
func (s *orderService) SendNote(ctx context.Context, id uuid.UUID, note string) (*NoteResult, error) {
	n, err := s.AddNote(ctx, id, note, actorFromContext(ctx))
	if err != nil {
		return nil, err
	}
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return &NoteResult{
		Note:        n,
		WhatsappURL: linkPtr(ord.CustomerPhone, NoteMessage(ord.OrderNumber, n.Note)),
	}, nil
}

func (s *orderService) FollowUpLink(ctx context.Context, id uuid.UUID) (*string, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get order", err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return linkPtr(ord.CustomerPhone, StatusMessage(ord)), nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *orderService) publishCreated(ctx context.Context, o *models.Order) {
	if s.events == nil {
		return
	}
	items := make([]OrderItemEvent, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, OrderItemEvent{
			Name:      l.Name,
			Variant:   l.Variant,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: deref(o.CustomerEmail),
		CustomerPhone: o.CustomerPhone,
		DeliveryType:  string(o.DeliveryType),
		Zone:          deref(o.Zone),
		PaymentMethod: string(o.PaymentMethod),
		Items:         items,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	})
	if err != nil {
		s.log.Warn("publish order.created failed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func (s *orderService) publishStatusChanged(ctx context.Context, o *models.Order, note string) {
	if s.events == nil {
		return
	}
	err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerEmail: deref(o.CustomerEmail),
		Status:        string(o.Status),
		Notes:         note,
		ChangedAt:     o.UpdatedAt,
	})
	if err != nil {
		s.log.Warn("publish order.status_changed failed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}
