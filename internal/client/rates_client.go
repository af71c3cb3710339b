package client

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agendamiento/internal/currency"
)

const defaultRatesURL = "https://api.exchangerate-api.com/v4/latest/USD"

// RatesClient fetches the public USD exchange-rate feed. The workflow must
// never block on rate-service unavailability, so Fetch always returns a
// usable snapshot, falling back to the hard-coded table per rate.
type RatesClient struct {
	URL  string
	HTTP *http.Client
}

func NewRatesClient(rawURL string, httpClient *http.Client) *RatesClient {
	if rawURL == "" {
		rawURL = defaultRatesURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &RatesClient{URL: rawURL, HTTP: httpClient}
}

// Fetch returns the current rate snapshot. ECS stays pegged 1:1 to USD and
// is never read from the feed.
func (c *RatesClient) Fetch(ctx context.Context) currency.Rates {
	fallback := currency.DefaultRates()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fallback
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("Rate service unreachable, using default rates: %v", err)
		return fallback
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("Rate service answered %d, using default rates", res.StatusCode)
		return fallback
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil || payload.Rates == nil {
		log.Printf("Rate service payload invalid, using default rates: %v", err)
		return fallback
	}

	return currency.Rates{
		USDCOP: rateOr(payload.Rates, "COP", fallback.USDCOP),
		USDCLP: rateOr(payload.Rates, "CLP", fallback.USDCLP),
		USDPEN: rateOr(payload.Rates, "PEN", fallback.USDPEN),
		USDBRL: rateOr(payload.Rates, "BRL", fallback.USDBRL),
		USDMXN: rateOr(payload.Rates, "MXN", fallback.USDMXN),
		USDECS: 1,
	}
}

func rateOr(rates map[string]float64, code string, fallback float64) float64 {
	if v, ok := rates[code]; ok && v > 0 {
		return v
	}
	return fallback
}
