package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// PaymentFilters filtros de listado de pagos. Exactamente uno de
// OrderID/SaleID debe estar presente (lo valida el caso de uso).
type PaymentFilters struct {
	OrderID         string
	SaleID          string
	PaymentMethodID string
	FromDate        *time.Time
	ToDate          *time.Time
	Limit           int
	Offset          int
}

// PaymentRepository puerto de persistencia de pagos.
// Las sumas se calculan en la base en el momento (no se cachean) para evitar
// drift respecto a los pagos reales.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	CreateMany(payments []*entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByTarget(f PaymentFilters) ([]*entity.Payment, error)
	CountByTarget(f PaymentFilters) (int, error)
	SumByOrderID(orderID string) (decimal.Decimal, error)
	SumBySaleID(saleID string) (decimal.Decimal, error)
	// LinkToSale re-enlaza los pagos de una orden hacia la venta derivada,
	// sin duplicarlos.
	LinkToSale(orderID, saleID string) error
}
