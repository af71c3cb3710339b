package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"agendamiento/internal/currency"
)

func TestFetchUsesFeedRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"COP": 4200, "CLP": 900, "PEN": 3.7, "BRL": 5.0, "MXN": 18, "ECS": 25000}}`))
	}))
	defer srv.Close()

	rates := NewRatesClient(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Equal(t, 4200.0, rates.USDCOP)
	assert.Equal(t, 900.0, rates.USDCLP)
	// ECS stays pegged no matter what the feed says.
	assert.Equal(t, 1.0, rates.USDECS)
}

func TestFetchFallsBackWhenFeedUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	rates := NewRatesClient(srv.URL, nil).Fetch(context.Background())
	assert.Equal(t, currency.DefaultRates(), rates)
}

func TestFetchFallsBackOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rates := NewRatesClient(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Equal(t, currency.DefaultRates(), rates)
}

func TestFetchFallsBackPerMissingRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"COP": 4200}}`))
	}))
	defer srv.Close()

	rates := NewRatesClient(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Equal(t, 4200.0, rates.USDCOP)
	assert.Equal(t, currency.DefaultRates().USDCLP, rates.USDCLP)
	assert.Equal(t, currency.DefaultRates().USDBRL, rates.USDBRL)
}
