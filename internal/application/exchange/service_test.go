package exchange_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/application/dto"
	"github.com/jhoicas/taller-pos-api/internal/application/exchange"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/internal/domain/entity"
	"github.com/jhoicas/taller-pos-api/internal/domain/repository"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// fakeConfigRepo configuración singleton en memoria.
type fakeConfigRepo struct {
	cfg *entity.ExchangeRateConfig
}

func (r *fakeConfigRepo) GetConfig() (*entity.ExchangeRateConfig, error) {
	return r.cfg, nil
}

func (r *fakeConfigRepo) UpdateConfig(u repository.ExchangeRateConfigUpdate) (*entity.ExchangeRateConfig, error) {
	if u.ActiveSource != nil {
		r.cfg.ActiveSource = *u.ActiveSource
	}
	if u.CustomRate != nil {
		r.cfg.CustomRate = *u.CustomRate
	}
	if u.AutoUpdate != nil {
		r.cfg.AutoUpdate = *u.AutoUpdate
	}
	return r.cfg, nil
}

func (r *fakeConfigRepo) UpdateBCVRates(usd, eur decimal.Decimal) error {
	r.cfg.BCVUSDRate = usd
	r.cfg.BCVEURRate = eur
	r.cfg.LastSync = time.Now()
	return nil
}

// fakeProvider provider BCV controlable: tasas fijas o error, y contador de
// llamadas para verificar que la fuente CUSTOM no toca la red.
type fakeProvider struct {
	usd     decimal.Decimal
	eur     decimal.Decimal
	err     error
	fetches int
	syncs   int
}

func (p *fakeProvider) USDRate(context.Context) (decimal.Decimal, error) {
	p.fetches++
	return p.usd, p.err
}

func (p *fakeProvider) EURRate(context.Context) (decimal.Decimal, error) {
	p.fetches++
	return p.eur, p.err
}

func (p *fakeProvider) Sync(context.Context) error {
	p.syncs++
	return p.err
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

func newService(source entity.ExchangeRateSource, p *fakeProvider) (*exchange.RateService, *fakeConfigRepo) {
	repo := &fakeConfigRepo{cfg: &entity.ExchangeRateConfig{
		ID:           "cfg",
		ActiveSource: source,
		CustomRate:   d("38.50"),
		BCVUSDRate:   d("40"),
		BCVEURRate:   d("43.20"),
		AutoUpdate:   true,
	}}
	return exchange.NewRateService(repo, p, logger.Nop()), repo
}

func TestGetCurrentRate_FuenteCustomNoTocaLaRed(t *testing.T) {
	p := &fakeProvider{usd: d("40")}
	svc, _ := newService(entity.SourceCustom, p)

	resp, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(d("38.50")))
	assert.Equal(t, entity.SourceCustom, resp.Source)
	assert.Zero(t, p.fetches, "con fuente CUSTOM no debe consultarse el BCV")
}

func TestGetCurrentRate_BCVUSD(t *testing.T) {
	p := &fakeProvider{usd: d("40.123")}
	svc, _ := newService(entity.SourceBCVUSD, p)

	resp, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(d("40.12")), "la tasa se redondea a 2 decimales: %s", resp.Rate)
	assert.Equal(t, entity.SourceBCVUSD, resp.Source)
}

func TestGetCurrentRate_BCVEUR(t *testing.T) {
	p := &fakeProvider{usd: d("40"), eur: d("43.20")}
	svc, _ := newService(entity.SourceBCVEUR, p)

	resp, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(d("43.20")))
	assert.Equal(t, entity.SourceBCVEUR, resp.Source)
}

func TestGetCurrentRate_FetchFallaUsaTasaPersistida(t *testing.T) {
	p := &fakeProvider{err: errors.New("bcv.org.ve no responde")}
	svc, _ := newService(entity.SourceBCVUSD, p)

	resp, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err, "la falla del BCV no debe tumbar la operación")
	assert.True(t, resp.Rate.Equal(d("40")), "debe usarse la última tasa conocida")
}

func TestGetCurrentRate_FetchFallaSinTasaPersistida(t *testing.T) {
	p := &fakeProvider{err: errors.New("bcv.org.ve no responde")}
	svc, repo := newService(entity.SourceBCVUSD, p)
	repo.cfg.BCVUSDRate = decimal.Zero

	_, err := svc.GetCurrentRate(context.Background())
	require.Error(t, err)
	var ie *domain.InternalError
	assert.ErrorAs(t, err, &ie)
}

func TestGetCurrentRate_DriftResincroniza(t *testing.T) {
	// La tasa remota se movió de 40 a 41: la config persistida debe actualizarse.
	p := &fakeProvider{usd: d("41"), eur: d("44")}
	svc, repo := newService(entity.SourceBCVUSD, p)

	resp, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(d("41")))
	assert.True(t, repo.cfg.BCVUSDRate.Equal(d("41")))
	assert.True(t, repo.cfg.BCVEURRate.Equal(d("44")))
	assert.False(t, repo.cfg.LastSync.IsZero())
}

func TestGetCurrentRate_SinDriftNoPersiste(t *testing.T) {
	p := &fakeProvider{usd: d("40"), eur: d("43.20")}
	svc, repo := newService(entity.SourceBCVUSD, p)

	_, err := svc.GetCurrentRate(context.Background())
	require.NoError(t, err)
	assert.True(t, repo.cfg.LastSync.IsZero(), "sin drift no hay re-sincronización")
}

func TestUpdateConfig_CambioDeFuente(t *testing.T) {
	p := &fakeProvider{usd: d("40")}
	svc, repo := newService(entity.SourceBCVUSD, p)

	resp, err := svc.UpdateConfig(context.Background(), dto.ExchangeConfigInput{
		ActiveSource: ptr(entity.SourceCustom),
		CustomRate:   ptr(d("39")),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceCustom, resp.ActiveSource)
	assert.True(t, repo.cfg.CustomRate.Equal(d("39")))
}

func TestUpdateConfig_RechazaTasaManualNoPositiva(t *testing.T) {
	p := &fakeProvider{}
	svc, _ := newService(entity.SourceCustom, p)

	_, err := svc.UpdateConfig(context.Background(), dto.ExchangeConfigInput{
		CustomRate: ptr(d("0")),
	})
	assert.Error(t, err)
}

func TestSync_PersisteAmbasTasas(t *testing.T) {
	p := &fakeProvider{usd: d("41.50"), eur: d("45.10")}
	svc, repo := newService(entity.SourceBCVUSD, p)

	resp, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.syncs)
	assert.True(t, resp.BCVUSDRate.Equal(d("41.50")))
	assert.True(t, resp.BCVEURRate.Equal(d("45.10")))
	assert.False(t, repo.cfg.LastSync.IsZero())
}

func TestSync_FallaDelProvider(t *testing.T) {
	p := &fakeProvider{err: errors.New("timeout")}
	svc, _ := newService(entity.SourceBCVUSD, p)

	_, err := svc.Sync(context.Background())
	require.Error(t, err)
	var ie *domain.InternalError
	assert.ErrorAs(t, err, &ie)
}
