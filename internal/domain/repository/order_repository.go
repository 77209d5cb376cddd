package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// OrderFilters filtros de listado/conteo de órdenes. Limit/Offset se ignoran en Count.
type OrderFilters struct {
	Search   string // placa, modelo o nombre de cliente
	Status   *entity.OrderStatus
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// OrderRepository puerto de persistencia de órdenes (DIP).
// GetByID devuelve la orden con sus detalles vigentes y los totales pagados
// calculados desde pagos (nil, nil si no existe o está soft-deleted).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// serializar el check-then-act de pagos y derivación de venta.
	GetByIDForUpdate(id string) (*entity.Order, error)
	List(f OrderFilters) ([]*entity.Order, error)
	Count(f OrderFilters) (int, error)
	UpdateStatus(id string, status entity.OrderStatus, startedAt, completedAt *time.Time) error
	UpdatePaymentStatus(id string, status entity.PaymentStatus) error
	UpdateTotals(id string, totalUSD, totalVES decimal.Decimal) error
	SoftDelete(id string) error
}

// OrderDetailRepository puerto de persistencia de líneas de orden.
type OrderDetailRepository interface {
	Create(detail *entity.OrderDetail) error
	CreateMany(details []*entity.OrderDetail) error
	GetByID(id string) (*entity.OrderDetail, error)
	// ListByOrderID devuelve solo las líneas vigentes (no soft-deleted).
	ListByOrderID(orderID string) ([]*entity.OrderDetail, error)
	SoftDelete(id string) error
	SoftDeleteByOrderID(orderID string) error
}
