// Package analytics arma el dashboard operativo del taller a partir de
// proyecciones de solo lectura.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// topItemsLimit y lowStockLimit acotan las listas del dashboard.
const (
	topItemsLimit = 10
	lowStockLimit = 20
)

// UseCase casos de uso del dashboard.
type UseCase struct {
	repo repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AnalyticsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Dashboard devuelve el resumen operativo del rango pedido. Sin rango se usa
// el mes calendario en curso.
func (uc *UseCase) Dashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if t, err := time.Parse(time.RFC3339, req.FromDate); err == nil {
		from = t
	}
	if t, err := time.Parse(time.RFC3339, req.ToDate); err == nil {
		to = t
	}

	statuses, err := uc.repo.OrdersByStatus()
	if err != nil {
		return nil, err
	}
	revenue, err := uc.repo.Revenue(from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopItems(from, to, topItemsLimit)
	if err != nil {
		return nil, err
	}
	low, err := uc.repo.LowStockProducts(lowStockLimit)
	if err != nil {
		return nil, err
	}

	resp := dto.FromDashboard(statuses, revenue, top, low)
	return &resp, nil
}
