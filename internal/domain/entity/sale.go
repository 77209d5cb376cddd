package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus ciclo de vida de una venta en punto de venta.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale registro de punto de venta. OrderID apunta a la orden de origen cuando
// la venta se deriva de una orden completada y pagada; es nil en ventas
// rápidas. Máximo una venta por orden (índice único sobre order_id).
type Sale struct {
	ID            string
	CustomerID    string
	Customer      *Customer
	OrderID       *string
	Details       []*SaleDetail
	DollarRate    decimal.Decimal
	TotalUSD      decimal.Decimal
	TotalVES      decimal.Decimal
	TotalPaidUSD  decimal.Decimal
	TotalPaidVES  decimal.Decimal
	Status        SaleStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// ValidSaleTransitions tabla dirigida de transiciones permitidas.
var ValidSaleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusCompleted: {SaleStatusRefunded},
	SaleStatusRefunded:  {SaleStatusCancelled},
	SaleStatusCancelled: {},
}

// CanTransitionTo indica si la venta admite pasar al estado destino.
func (s *Sale) CanTransitionTo(target SaleStatus) bool {
	for _, st := range ValidSaleTransitions[s.Status] {
		if st == target {
			return true
		}
	}
	return false
}

// AcceptsPayments indica si la venta admite registrar pagos nuevos.
func (s *Sale) AcceptsPayments() bool {
	return s.Status != SaleStatusCancelled && s.Status != SaleStatusRefunded
}
