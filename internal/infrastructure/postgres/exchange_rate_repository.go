package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo implementación del puerto ExchangeRateRepository.
// La tabla exchange_rate_config guarda una sola fila (singleton).
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador.
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

const exchangeSelect = `SELECT id, active_source, custom_rate, bcv_usd_rate, bcv_eur_rate, auto_update, last_sync, created_at, updated_at
	FROM exchange_rate_config`

func (r *ExchangeRateRepo) scan(row pgx.Row) (*entity.ExchangeRateConfig, error) {
	var c entity.ExchangeRateConfig
	err := row.Scan(&c.ID, &c.ActiveSource, &c.CustomRate, &c.BCVUSDRate, &c.BCVEURRate,
		&c.AutoUpdate, &c.LastSync, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConfig obtiene la configuración, creándola con defaults si no existe.
func (r *ExchangeRateRepo) GetConfig() (*entity.ExchangeRateConfig, error) {
	cfg, err := r.scan(r.q.QueryRow(context.Background(), exchangeSelect+` LIMIT 1`))
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get exchange config: %w", err)
	}

	now := time.Now()
	seed := &entity.ExchangeRateConfig{
		ID:           uuid.NewString(),
		ActiveSource: entity.SourceBCVUSD,
		CustomRate:   decimal.Zero,
		BCVUSDRate:   decimal.Zero,
		BCVEURRate:   decimal.Zero,
		AutoUpdate:   true,
		LastSync:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO exchange_rate_config (id, active_source, custom_rate, bcv_usd_rate, bcv_eur_rate, auto_update, last_sync, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		seed.ID, seed.ActiveSource, seed.CustomRate, seed.BCVUSDRate, seed.BCVEURRate,
		seed.AutoUpdate, seed.LastSync, seed.CreatedAt, seed.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("seed exchange config: %w", err)
	}
	return seed, nil
}

// UpdateConfig aplica cambios parciales y devuelve la configuración resultante.
func (r *ExchangeRateRepo) UpdateConfig(u repository.ExchangeRateConfigUpdate) (*entity.ExchangeRateConfig, error) {
	cfg, err := r.GetConfig()
	if err != nil {
		return nil, err
	}
	if u.ActiveSource != nil {
		cfg.ActiveSource = *u.ActiveSource
	}
	if u.CustomRate != nil {
		cfg.CustomRate = *u.CustomRate
	}
	if u.AutoUpdate != nil {
		cfg.AutoUpdate = *u.AutoUpdate
	}
	cfg.UpdatedAt = time.Now()

	_, err = r.q.Exec(context.Background(),
		`UPDATE exchange_rate_config SET active_source = $2, custom_rate = $3, auto_update = $4, updated_at = $5 WHERE id = $1`,
		cfg.ID, cfg.ActiveSource, cfg.CustomRate, cfg.AutoUpdate, cfg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update exchange config: %w", err)
	}
	return cfg, nil
}

// UpdateBCVRates persiste las tasas sincronizadas como último-valor-conocido.
func (r *ExchangeRateRepo) UpdateBCVRates(usdRate, eurRate decimal.Decimal) error {
	cfg, err := r.GetConfig()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE exchange_rate_config SET bcv_usd_rate = $2, bcv_eur_rate = $3, last_sync = now(), updated_at = now() WHERE id = $1`,
		cfg.ID, usdRate, eurRate,
	)
	if err != nil {
		return fmt.Errorf("update bcv rates: %w", err)
	}
	return nil
}
