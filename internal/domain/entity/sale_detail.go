package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDetail línea de una venta: exactamente un servicio o un producto.
// ItemName es derivado del catálogo al leer (no se persiste en la línea).
type SaleDetail struct {
	ID        string
	SaleID    string
	Item      ItemRef
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // quantity × unitPrice, persistido
	CreatedAt time.Time
	DeletedAt *time.Time
}
