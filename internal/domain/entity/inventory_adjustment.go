package entity

import "time"

// AdjustmentType dirección de un ajuste manual de inventario.
type AdjustmentType string

const (
	AdjustmentIn  AdjustmentType = "IN"
	AdjustmentOut AdjustmentType = "OUT"
)

// AdjustmentReason motivo del ajuste.
type AdjustmentReason string

const (
	ReasonDamaged         AdjustmentReason = "DAMAGED"
	ReasonExpired         AdjustmentReason = "EXPIRED"
	ReasonTheft           AdjustmentReason = "THEFT"
	ReasonAuditCorrection AdjustmentReason = "AUDIT_CORRECTION"
	ReasonSpilled         AdjustmentReason = "SPILLED"
	ReasonOther           AdjustmentReason = "OTHER"
)

// InventoryAdjustment corrección manual de stock con snapshot antes/después
// para auditoría. Inmutable una vez registrado.
type InventoryAdjustment struct {
	ID             string
	ProductID      string
	ProductName    string
	AdjustmentType AdjustmentType
	Quantity       int
	StockBefore    int
	StockAfter     int
	Reason         AdjustmentReason
	Notes          *string
	CreatedAt      time.Time
}
