package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
)

// ExchangeRateConfigUpdate cambios parciales sobre la configuración de tasa.
type ExchangeRateConfigUpdate struct {
	ActiveSource *entity.ExchangeRateSource
	CustomRate   *decimal.Decimal
	AutoUpdate   *bool
}

// ExchangeRateRepository puerto de la configuración singleton de tasa de cambio.
// GetConfig crea la fila con defaults si aún no existe (get-or-create).
type ExchangeRateRepository interface {
	GetConfig() (*entity.ExchangeRateConfig, error)
	UpdateConfig(u ExchangeRateConfigUpdate) (*entity.ExchangeRateConfig, error)
	// UpdateBCVRates persiste las tasas sincronizadas y actualiza lastSync.
	UpdateBCVRates(usdRate, eurRate decimal.Decimal) error
}
