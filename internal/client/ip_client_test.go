package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip": "203.0.113.7"}`))
	}))
	defer srv.Close()

	ip := NewIPClient(srv.URL, srv.Client()).PublicIP(context.Background())
	assert.Equal(t, "203.0.113.7", ip)
}

func TestPublicIPFallsBackToLoopback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	ip := NewIPClient(srv.URL, nil).PublicIP(context.Background())
	assert.Equal(t, "127.0.0.1", ip)
}

func TestPublicIPFallsBackOnEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ip := NewIPClient(srv.URL, srv.Client()).PublicIP(context.Background())
	assert.Equal(t, "127.0.0.1", ip)
}
