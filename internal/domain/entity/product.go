package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitType unidad de medida de la mercancía.
type UnitType string

const (
	UnitLiters      UnitType = "LITERS"
	UnitMilliliters UnitType = "MILLILITERS"
	UnitKilograms   UnitType = "KILOGRAMS"
	UnitGrams       UnitType = "GRAMS"
	UnitUnits       UnitType = "UNITS"
	UnitBoxes       UnitType = "BOXES"
	UnitBottles     UnitType = "BOTTLES"
)

// Product mercancía del taller. Stock se muta únicamente vía consumo en
// líneas de orden/venta o ajustes manuales de inventario, nunca queda negativo.
type Product struct {
	ID          string
	CategoryID  string
	Category    *Category
	Name        string
	Description *string
	Unit        UnitType
	Stock       int
	MinStock    int
	CostPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// StockUpdate par producto/stock-resultante para actualizaciones en lote.
type StockUpdate struct {
	ProductID string
	NewStock  int
}
