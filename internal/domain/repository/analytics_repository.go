package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCount conteo de órdenes por estado.
type OrderStatusCount struct {
	Status string
	Count  int
}

// RevenueSummary ingresos agregados de ventas en un rango.
type RevenueSummary struct {
	TotalUSD   decimal.Decimal
	TotalVES   decimal.Decimal
	SalesCount int
}

// TopItem servicio o producto más vendido.
type TopItem struct {
	ID       string
	Name     string
	Kind     string // SERVICE | PRODUCT
	Quantity int
	Revenue  decimal.Decimal
}

// LowStockProduct producto por debajo de su stock mínimo.
type LowStockProduct struct {
	ID       string
	Name     string
	Stock    int
	MinStock int
}

// AnalyticsRepository proyecciones de solo lectura para el dashboard.
type AnalyticsRepository interface {
	OrdersByStatus() ([]OrderStatusCount, error)
	Revenue(from, to time.Time) (*RevenueSummary, error)
	TopItems(from, to time.Time, limit int) ([]TopItem, error)
	LowStockProducts(limit int) ([]LowStockProduct, error)
}
