package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus ciclo de vida de una orden de trabajo.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus estado de cobro de una orden o venta.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Order orden de trabajo del taller: intake -> trabajo -> completada.
// DollarRate se captura al crear y queda fijo; los totales se recalculan a esa
// tasa cuando cambian los detalles. TotalPaidUSD/VES se calculan al leer desde
// la suma de pagos vigentes, nunca se cachean.
type Order struct {
	ID            string
	CustomerID    string
	Customer      *Customer
	Details       []*OrderDetail
	VehiclePlate  *string
	VehicleModel  string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	DollarRate    decimal.Decimal
	TotalUSD      decimal.Decimal
	TotalVES      decimal.Decimal
	TotalPaidUSD  decimal.Decimal
	TotalPaidVES  decimal.Decimal
	StartedAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// ValidOrderTransitions tabla dirigida de transiciones permitidas. Nunca hay
// retrocesos; CANCELLED es terminal.
var ValidOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {OrderStatusCancelled},
	OrderStatusCancelled:  {},
}

// CanTransitionTo indica si la orden admite pasar al estado destino.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, s := range ValidOrderTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}
