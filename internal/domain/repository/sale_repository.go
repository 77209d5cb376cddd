package repository

import (
	"time"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// SaleFilters filtros de listado/conteo de ventas.
type SaleFilters struct {
	Search   string
	Status   *entity.SaleStatus
	OrderID  string
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// SaleRepository puerto de persistencia de ventas. Create persiste la venta y
// sus detalles en la misma unidad de trabajo (el Querier al que esté atado el
// repositorio, normalmente una tx).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE) para serializar
	// pagos concurrentes contra la misma venta.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	// GetByOrderID devuelve la venta derivada de una orden, nil si no hay.
	GetByOrderID(orderID string) (*entity.Sale, error)
	List(f SaleFilters) ([]*entity.Sale, error)
	Count(f SaleFilters) (int, error)
	UpdateStatus(id string, status entity.SaleStatus) error
	UpdatePaymentStatus(id string, status entity.PaymentStatus) error
}
