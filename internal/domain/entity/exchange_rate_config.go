package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSource selector de la fuente activa de la tasa de cambio.
type ExchangeRateSource string

const (
	SourceBCVUSD ExchangeRateSource = "BCV_USD"
	SourceBCVEUR ExchangeRateSource = "BCV_EUR"
	SourceCustom ExchangeRateSource = "CUSTOM"
)

// ExchangeRateConfig configuración singleton de la tasa de cambio. Guarda las
// últimas tasas sincronizadas del BCV como último-valor-conocido para el
// fallback cuando el fetch remoto falla.
type ExchangeRateConfig struct {
	ID           string
	ActiveSource ExchangeRateSource
	CustomRate   decimal.Decimal
	BCVUSDRate   decimal.Decimal
	BCVEURRate   decimal.Decimal
	AutoUpdate   bool
	LastSync     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
