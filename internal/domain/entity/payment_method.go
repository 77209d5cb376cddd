package entity

import "time"

// PaymentMethod método de cobro configurado (efectivo USD, pago móvil, punto, etc.).
// IsActive desactiva el método sin romper pagos históricos; el soft delete
// permite revivirlo si se vuelve a crear con el mismo nombre.
type PaymentMethod struct {
	ID        string
	Name      string
	Currency  Currency
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
