package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetail línea de una orden: exactamente un servicio o un producto.
// PriceAtTime es la foto del precio al momento de agregar la línea; no se
// actualiza aunque el catálogo cambie después.
type OrderDetail struct {
	ID          string
	OrderID     string
	Item        ItemRef
	Quantity    int
	PriceAtTime decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Subtotal cantidad por precio capturado.
func (d *OrderDetail) Subtotal() decimal.Decimal {
	return d.PriceAtTime.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
