package bcv_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-pos-api/internal/infrastructure/bcv"
	"github.com/jhoicas/taller-pos-api/pkg/config"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// Recorte representativo de la página del BCV: valor con coma decimal dentro
// del div identificado.
const bcvHTML = `<!DOCTYPE html>
<html><body>
<div id="euro"><span> EUR </span><strong> 43,11223344 </strong></div>
<div id="dolar"><span> USD </span><strong> 36,58960000 </strong></div>
</body></html>`

func newTestClient(url string) *bcv.Client {
	return bcv.NewClient(config.BCVConfig{
		URL:            url,
		TimeoutSeconds: 5,
		CacheMinutes:   10,
	}, logger.Nop())
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestExtractRate(t *testing.T) {
	pattern := regexp.MustCompile(`(?s)id="dolar".*?<strong>\s*([\d.,]+)\s*</strong>`)

	casos := []struct {
		nombre string
		html   string
		want   string
		fails  bool
	}{
		{nombre: "coma decimal", html: `<div id="dolar"><strong> 36,58960000 </strong></div>`, want: "36.5896"},
		{nombre: "separador de miles", html: `<div id="dolar"><strong>1.036,50</strong></div>`, want: "1036.50"},
		{nombre: "entero", html: `<div id="dolar"><strong>40</strong></div>`, want: "40"},
		{nombre: "sin valor", html: `<div id="petro"><strong>1,00</strong></div>`, fails: true},
		{nombre: "cero", html: `<div id="dolar"><strong>0,00</strong></div>`, fails: true},
	}
	for _, c := range casos {
		rate, err := bcv.ExtractRate([]byte(c.html), pattern)
		if c.fails {
			assert.Error(t, err, c.nombre)
			continue
		}
		require.NoError(t, err, c.nombre)
		assert.True(t, rate.Equal(d(c.want)), "%s: %s", c.nombre, rate)
	}
}

func TestUSDRate_ExtraeDeLaPagina(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bcvHTML))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	usd, err := c.USDRate(context.Background())
	require.NoError(t, err)
	assert.True(t, usd.Equal(d("36.5896")), "usd: %s", usd)

	eur, err := c.EURRate(context.Background())
	require.NoError(t, err)
	assert.True(t, eur.Equal(d("43.11223344")), "eur: %s", eur)
}

func TestUSDRate_CacheaEntreLlamadas(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(bcvHTML))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.USDRate(context.Background())
	require.NoError(t, err)
	_, err = c.EURRate(context.Background())
	require.NoError(t, err)
	_, err = c.USDRate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "dentro del TTL solo debe haber un fetch")
}

func TestSync_IgnoraElCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(bcvHTML))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	require.NoError(t, c.Sync(context.Background()))
	require.NoError(t, c.Sync(context.Background()))

	assert.Equal(t, int32(2), hits.Load(), "Sync debe refetchear aunque el caché siga fresco")
}

func TestUSDRate_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.USDRate(context.Background())
	assert.Error(t, err)
}

func TestUSDRate_PaginaSinTasas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>mantenimiento</body></html>"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.USDRate(context.Background())
	assert.Error(t, err)
}
