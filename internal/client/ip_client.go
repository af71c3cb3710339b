package client

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const defaultIPLookupURL = "https://api.ipify.org?format=json"

// loopbackIP is sent to the local rail when the lookup fails; submission
// must never block on it.
const loopbackIP = "127.0.0.1"

// IPClient resolves the caller's public IP for fraud/audit fields on
// local-rail payments.
type IPClient struct {
	URL  string
	HTTP *http.Client
}

func NewIPClient(rawURL string, httpClient *http.Client) *IPClient {
	if rawURL == "" {
		rawURL = defaultIPLookupURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &IPClient{URL: rawURL, HTTP: httpClient}
}

// PublicIP returns the caller's public address, or the loopback placeholder.
func (c *IPClient) PublicIP(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return loopbackIP
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("No se pudo obtener IP: %v", err)
		return loopbackIP
	}
	defer res.Body.Close()

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil || payload.IP == "" {
		return loopbackIP
	}
	return payload.IP
}
