package service

import (
	"context"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"
)

type ActiveCount struct {
	Active int64 `json:"active"`
}

type OrderStats struct {
	Total     int64                        `json:"total"`
	ThisMonth int64                        `json:"thisMonth"`
	ByStatus  map[models.OrderStatus]int64 `json:"byStatus"`
}

type Dashboard struct {
	Products ActiveCount `json:"products"`
	Events   ActiveCount `json:"events"`
	Orders   OrderStats  `json:"orders"`
}

type DashboardService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewDashboardService(repo *repository.Repository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	products, err := s.repo.Products.CountActive(ctx)
	if err != nil {
		return nil, persistErr("count products", err)
	}
	events, err := s.repo.Events.CountActive(ctx)
	if err != nil {
		return nil, persistErr("count events", err)
	}
	counts, err := s.repo.Orders.CountByStatus(ctx)
	if err != nil {
		return nil, persistErr("count orders", err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	thisMonth, err := s.repo.Orders.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, persistErr("count orders", err)
	}

	byStatus := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	var total int64
	for _, st := range models.OrderStatuses {
		byStatus[st] = counts[st]
		total += counts[st]
	}

	return &Dashboard{
		Products: ActiveCount{Active: products},
		Events:   ActiveCount{Active: events},
		Orders:   OrderStats{Total: total, ThisMonth: thisMonth, ByStatus: byStatus},
	}, nil
}
