package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service servicio ofrecido por el taller (mano de obra). Status inactivo
// impide agregarlo a órdenes o ventas nuevas sin borrar el histórico.
type Service struct {
	ID          string
	Name        string
	Description *string
	Price       decimal.Decimal
	Status      bool // activo/inactivo
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
