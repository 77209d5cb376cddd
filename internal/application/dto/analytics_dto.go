package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

// DashboardRequest rango temporal del dashboard (RFC 3339; defaults al mes actual).
type DashboardRequest struct {
	FromDate string `query:"fromDate"`
	ToDate   string `query:"toDate"`
}

// StatusCountResponse conteo de órdenes por estado.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// RevenueResponse ingresos agregados del rango.
type RevenueResponse struct {
	TotalUSD   decimal.Decimal `json:"totalUsd"`
	TotalVES   decimal.Decimal `json:"totalVes"`
	SalesCount int             `json:"salesCount"`
}

// TopItemResponse servicio o producto más vendido del rango.
type TopItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// LowStockResponse producto por debajo de su mínimo.
type LowStockResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}

// DashboardResponse resumen operativo del taller.
type DashboardResponse struct {
	OrdersByStatus []StatusCountResponse `json:"ordersByStatus"`
	Revenue        RevenueResponse       `json:"revenue"`
	TopItems       []TopItemResponse     `json:"topItems"`
	LowStock       []LowStockResponse    `json:"lowStock"`
}

// FromDashboard arma la respuesta del dashboard a partir de las proyecciones.
func FromDashboard(
	statuses []repository.OrderStatusCount,
	revenue *repository.RevenueSummary,
	top []repository.TopItem,
	low []repository.LowStockProduct,
) DashboardResponse {
	resp := DashboardResponse{
		OrdersByStatus: make([]StatusCountResponse, 0, len(statuses)),
		TopItems:       make([]TopItemResponse, 0, len(top)),
		LowStock:       make([]LowStockResponse, 0, len(low)),
	}
	for _, s := range statuses {
		resp.OrdersByStatus = append(resp.OrdersByStatus, StatusCountResponse(s))
	}
	if revenue != nil {
		resp.Revenue = RevenueResponse(*revenue)
	}
	for _, t := range top {
		resp.TopItems = append(resp.TopItems, TopItemResponse(t))
	}
	for _, l := range low {
		resp.LowStock = append(resp.LowStock, LowStockResponse(l))
	}
	return resp
}
