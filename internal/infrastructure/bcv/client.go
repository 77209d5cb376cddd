// Package bcv extrae las tasas oficiales de cambio publicadas por el
// Banco Central de Venezuela en su página principal.
package bcv

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-pos-api/internal/application/exchange"
	"github.com/jhoicas/taller-pos-api/internal/domain"
	"github.com/jhoicas/taller-pos-api/pkg/config"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

var _ exchange.RateProvider = (*Client)(nil)

// La página del BCV marca cada tasa con un div identificado (#dolar, #euro)
// que contiene el valor con coma decimal, p.ej. <strong> 36,58960000 </strong>.
var (
	usdPattern = regexp.MustCompile(`(?s)id="dolar".*?<strong>\s*([\d.,]+)\s*</strong>`)
	eurPattern = regexp.MustCompile(`(?s)id="euro".*?<strong>\s*([\d.,]+)\s*</strong>`)
)

// Client scraper de tasas del BCV con caché en memoria. El sitio del BCV
// suele tener el certificado TLS vencido, de ahí el skip-verify configurable.
type Client struct {
	url      string
	http     *http.Client
	cacheTTL time.Duration
	log      *logger.Logger

	mu        sync.Mutex
	usd       decimal.Decimal
	eur       decimal.Decimal
	fetchedAt time.Time
}

// NewClient construye el cliente según la configuración.
func NewClient(cfg config.BCVConfig, log *logger.Logger) *Client {
	transport := &http.Transport{}
	if cfg.InsecureSkipTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		url: cfg.URL,
		http: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: transport,
		},
		cacheTTL: time.Duration(cfg.CacheMinutes) * time.Minute,
		log:      log,
	}
}

// USDRate devuelve la tasa USD/VES, sirviendo del caché si sigue fresco.
func (c *Client) USDRate(ctx context.Context) (decimal.Decimal, error) {
	usd, _, err := c.rates(ctx, false)
	return usd, err
}

// EURRate devuelve la tasa EUR/VES, sirviendo del caché si sigue fresco.
func (c *Client) EURRate(ctx context.Context) (decimal.Decimal, error) {
	_, eur, err := c.rates(ctx, false)
	return eur, err
}

// Sync fuerza un refetch ignorando el caché.
func (c *Client) Sync(ctx context.Context) error {
	_, _, err := c.rates(ctx, true)
	return err
}

func (c *Client) rates(ctx context.Context, force bool) (decimal.Decimal, decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.cacheTTL {
		return c.usd, c.eur, nil
	}

	usd, eur, err := c.fetch(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	c.usd, c.eur, c.fetchedAt = usd, eur, time.Now()
	c.log.Debug().
		Str("usd", usd.String()).
		Str("eur", eur.String()).
		Msg("tasas BCV actualizadas")
	return usd, eur, nil
}

func (c *Client) fetch(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("build bcv request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fetch bcv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, decimal.Zero, domain.Internal("bcv respondió %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("read bcv body: %w", err)
	}

	usd, err := ExtractRate(body, usdPattern)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tasa usd: %w", err)
	}
	eur, err := ExtractRate(body, eurPattern)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tasa eur: %w", err)
	}
	return usd, eur, nil
}

// ExtractRate localiza la tasa en el HTML según el patrón y la normaliza
// (el BCV usa punto como separador de miles y coma decimal).
func ExtractRate(html []byte, pattern *regexp.Regexp) (decimal.Decimal, error) {
	m := pattern.FindSubmatch(html)
	if m == nil {
		return decimal.Zero, fmt.Errorf("valor no encontrado en la página")
	}
	raw := strings.TrimSpace(string(m[1]))
	raw = strings.ReplaceAll(raw, ".", "")
	raw = strings.ReplaceAll(raw, ",", ".")

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor %q no es numérico: %w", raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("tasa no positiva: %s", rate)
	}
	return rate, nil
}
