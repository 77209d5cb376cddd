package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// ExchangeConfigInput actualización parcial de la configuración de tasa.
type ExchangeConfigInput struct {
	ActiveSource *entity.ExchangeRateSource `json:"activeSource"`
	CustomRate   *decimal.Decimal           `json:"customRate"`
	AutoUpdate   *bool                      `json:"autoUpdate"`
}

// ExchangeConfigResponse configuración de tasa vigente.
type ExchangeConfigResponse struct {
	ActiveSource entity.ExchangeRateSource `json:"activeSource"`
	CustomRate   decimal.Decimal           `json:"customRate"`
	BCVUSDRate   decimal.Decimal           `json:"bcvUsdRate"`
	BCVEURRate   decimal.Decimal           `json:"bcvEurRate"`
	AutoUpdate   bool                      `json:"autoUpdate"`
	LastSync     time.Time                 `json:"lastSync"`
}

// CurrentRateResponse tasa efectiva que usarán órdenes, ventas y pagos.
type CurrentRateResponse struct {
	Rate   decimal.Decimal           `json:"rate"`
	Source entity.ExchangeRateSource `json:"source"`
}

// FromExchangeConfig proyecta la configuración a su representación pública.
func FromExchangeConfig(c *entity.ExchangeRateConfig) ExchangeConfigResponse {
	return ExchangeConfigResponse{
		ActiveSource: c.ActiveSource,
		CustomRate:   c.CustomRate,
		BCVUSDRate:   c.BCVUSDRate,
		BCVEURRate:   c.BCVEURRate,
		AutoUpdate:   c.AutoUpdate,
		LastSync:     c.LastSync,
	}
}
