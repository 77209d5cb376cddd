package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency moneda en la que el caller expresó el monto original.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyVES Currency = "VES"
)

// PaymentTarget destino de un pago: exactamente una orden o una venta.
type PaymentTargetKind string

const (
	PaymentTargetOrder PaymentTargetKind = "ORDER"
	PaymentTargetSale  PaymentTargetKind = "SALE"
)

// PaymentTarget unión etiquetada orden-XOR-venta.
type PaymentTarget struct {
	Kind PaymentTargetKind
	ID   string
}

// OrderTarget construye el destino hacia una orden.
func OrderTarget(orderID string) PaymentTarget {
	return PaymentTarget{Kind: PaymentTargetOrder, ID: orderID}
}

// SaleTarget construye el destino hacia una venta.
func SaleTarget(saleID string) PaymentTarget {
	return PaymentTarget{Kind: PaymentTargetSale, ID: saleID}
}

// OrderID devuelve el id como puntero si el destino es una orden (para persistencia).
func (t PaymentTarget) OrderID() *string {
	if t.Kind == PaymentTargetOrder {
		id := t.ID
		return &id
	}
	return nil
}

// SaleID devuelve el id como puntero si el destino es una venta (para persistencia).
func (t PaymentTarget) SaleID() *string {
	if t.Kind == PaymentTargetSale {
		id := t.ID
		return &id
	}
	return nil
}

// PaymentTargetFromColumns reconstruye la unión desde las columnas nullable.
func PaymentTargetFromColumns(orderID, saleID *string) PaymentTarget {
	switch {
	case orderID != nil:
		return OrderTarget(*orderID)
	case saleID != nil:
		return SaleTarget(*saleID)
	default:
		return PaymentTarget{}
	}
}

// Payment abono contra una orden o una venta. Inmutable una vez creado, salvo
// el re-enlace de orden a venta cuando se deriva la venta con pagos previos.
// ExchangeRate es la tasa vigente al momento del pago; la otra moneda se
// deriva redondeando a 2 decimales.
type Payment struct {
	ID               string
	Target           PaymentTarget
	PaymentMethodID  string
	PaymentMethod    *PaymentMethod
	AmountUSD        decimal.Decimal
	ExchangeRate     decimal.Decimal
	AmountVES        decimal.Decimal
	OriginalCurrency Currency
	PaymentDate      time.Time
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// IsReversal indica si el pago es un reverso (monto negativo).
func (p *Payment) IsReversal() bool {
	return p.AmountUSD.IsNegative()
}
