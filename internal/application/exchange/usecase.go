// Package exchange resuelve la tasa de cambio USD/VES que usan órdenes,
// ventas y pagos. La fuente activa puede ser BCV (dólar o euro) o una tasa
// manual; una falla del fetch remoto nunca tumba una operación de negocio.
package exchange

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// driftTolerance diferencia mínima contra la tasa persistida a partir de la
// cual vale la pena re-sincronizar la configuración.
var driftTolerance = decimal.NewFromFloat(0.01)

// RateService caso de uso de tasa de cambio.
type RateService struct {
	repo     repository.ExchangeRateRepository
	provider RateProvider
	log      *logger.Logger
}

// NewRateService construye el caso de uso.
func NewRateService(repo repository.ExchangeRateRepository, provider RateProvider, log *logger.Logger) *RateService {
	return &RateService{repo: repo, provider: provider, log: log}
}

// GetCurrentRate devuelve la tasa efectiva según la fuente activa, redondeada
// a 2 decimales. Con fuente CUSTOM no se toca la red. Con fuente BCV se
// consulta el provider; si la tasa obtenida difiere de la persistida en más
// de la tolerancia se re-sincroniza la configuración (best effort). Si el
// fetch falla se usa la última tasa conocida.
func (s *RateService) GetCurrentRate(ctx context.Context) (*dto.CurrentRateResponse, error) {
	cfg, err := s.repo.GetConfig()
	if err != nil {
		return nil, err
	}

	if cfg.ActiveSource == entity.SourceCustom {
		return &dto.CurrentRateResponse{Rate: cfg.CustomRate.Round(2), Source: entity.SourceCustom}, nil
	}

	var fetched decimal.Decimal
	var fetchErr error
	switch cfg.ActiveSource {
	case entity.SourceBCVUSD:
		fetched, fetchErr = s.provider.USDRate(ctx)
	case entity.SourceBCVEUR:
		fetched, fetchErr = s.provider.EURRate(ctx)
	default:
		return nil, domain.Internal("fuente de tasa desconocida: %s", cfg.ActiveSource)
	}

	if fetchErr != nil {
		fallback := s.persistedRate(cfg)
		if fallback.IsZero() {
			return nil, domain.Internal("sin tasa disponible: fetch BCV falló y no hay tasa persistida: %v", fetchErr)
		}
		s.log.Warn().Err(fetchErr).
			Str("source", string(cfg.ActiveSource)).
			Str("fallback", fallback.String()).
			Msg("fetch BCV falló, usando última tasa conocida")
		return &dto.CurrentRateResponse{Rate: fallback.Round(2), Source: cfg.ActiveSource}, nil
	}

	// Re-sincronizar la config cuando la tasa remota se movió. Que falle el
	// persist no invalida la tasa recién obtenida.
	if fetched.Sub(s.persistedRate(cfg)).Abs().GreaterThan(driftTolerance) {
		if err := s.syncRates(ctx); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo persistir la tasa BCV sincronizada")
		}
	}

	return &dto.CurrentRateResponse{Rate: fetched.Round(2), Source: cfg.ActiveSource}, nil
}

// GetConfig devuelve la configuración vigente (se crea con defaults la primera vez).
func (s *RateService) GetConfig(ctx context.Context) (*dto.ExchangeConfigResponse, error) {
	cfg, err := s.repo.GetConfig()
	if err != nil {
		return nil, err
	}
	resp := dto.FromExchangeConfig(cfg)
	return &resp, nil
}

// UpdateConfig aplica cambios parciales a la configuración de tasa.
func (s *RateService) UpdateConfig(ctx context.Context, in dto.ExchangeConfigInput) (*dto.ExchangeConfigResponse, error) {
	if in.ActiveSource != nil {
		switch *in.ActiveSource {
		case entity.SourceBCVUSD, entity.SourceBCVEUR, entity.SourceCustom:
		default:
			return nil, domain.Internal("fuente de tasa desconocida: %s", *in.ActiveSource)
		}
	}
	if in.CustomRate != nil && !in.CustomRate.IsPositive() {
		return nil, domain.ErrInvalidPaymentAmount
	}
	cfg, err := s.repo.UpdateConfig(repository.ExchangeRateConfigUpdate{
		ActiveSource: in.ActiveSource,
		CustomRate:   in.CustomRate,
		AutoUpdate:   in.AutoUpdate,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromExchangeConfig(cfg)
	return &resp, nil
}

// Sync fuerza una sincronización con el BCV y persiste ambas tasas.
func (s *RateService) Sync(ctx context.Context) (*dto.ExchangeConfigResponse, error) {
	if err := s.provider.Sync(ctx); err != nil {
		return nil, domain.Internal("sincronización BCV falló: %v", err)
	}
	if err := s.syncRates(ctx); err != nil {
		return nil, err
	}
	return s.GetConfig(ctx)
}

func (s *RateService) syncRates(ctx context.Context) error {
	usd, err := s.provider.USDRate(ctx)
	if err != nil {
		return err
	}
	eur, err := s.provider.EURRate(ctx)
	if err != nil {
		return err
	}
	return s.repo.UpdateBCVRates(usd, eur)
}

func (s *RateService) persistedRate(cfg *entity.ExchangeRateConfig) decimal.Decimal {
	if cfg.ActiveSource == entity.SourceBCVEUR {
		return cfg.BCVEURRate
	}
	return cfg.BCVUSDRate
}
