package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendamiento/internal/client"
	"agendamiento/internal/entities"
	"agendamiento/internal/service"
)

func newPurchaseRouter(t *testing.T, upstream http.HandlerFunc) *mux.Router {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadSrv.Close()

	wellness := client.NewWellnessClient(srv.URL, "", srv.Client())
	svc := service.NewPurchaseService(wellness,
		client.NewRatesClient(deadSrv.URL, nil),
		service.NewBinanceService(wellness),
		service.NewTodayPayService(wellness, client.NewIPClient(deadSrv.URL, nil)),
		nil, nil)

	h := NewPurchaseHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/purchases", h.CreatePurchase).Methods("POST")
	return r
}

func TestCreatePurchaseRejectsInvalidBody(t *testing.T) {
	router := newPurchaseRouter(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/purchases", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePurchaseReturnsStageOnFailure(t *testing.T) {
	router := newPurchaseRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the platform")
	})

	body := `{"resource_kind": "session", "resource_id": "12", "amount_usd": 100, "rail": "binance"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/purchases", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var result entities.WorkflowResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, entities.StageValidating, result.Stage)
	assert.Equal(t, "Por favor selecciona una fecha para la sesión", result.Message)
}

func TestCreatePurchaseCompletedRun(t *testing.T) {
	router := newPurchaseRouter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sesiones_agendar":
			w.Write([]byte(`{"success": true, "message": "ok"}`))
		case "/compra/binance":
			w.Write([]byte(`{"success": true, "data": {"url_pago_web": "https://pay.example/x"}, "message": "ok"}`))
		default:
			http.NotFound(w, r)
		}
	})

	body := `{"resource_kind": "session", "resource_id": "12", "amount_usd": 100, "rail": "binance",
		"session_date": "2026-09-15", "schedule_id": "3"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/purchases", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var result entities.WorkflowResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "https://pay.example/x", result.PaymentURL)
}
