package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendamiento/internal/client"
	"agendamiento/internal/service"
)

func newScheduleRouter(t *testing.T, upstream http.HandlerFunc) *mux.Router {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadSrv.Close()

	wellness := client.NewWellnessClient(srv.URL, "", srv.Client())
	h := NewScheduleHandler(service.NewScheduleService(wellness), client.NewRatesClient(deadSrv.URL, nil))

	r := mux.NewRouter()
	r.HandleFunc("/api/sessions/{id}/blocked-dates", h.BlockedDates).Methods("GET")
	r.HandleFunc("/api/sessions/{id}/schedules", h.Slots).Methods("GET")
	r.HandleFunc("/api/courses/{id}/timetable", h.Timetable).Methods("GET")
	return r
}

func TestBlockedDatesEndpoint(t *testing.T) {
	router := newScheduleRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sesiones/12/fechas-no-disponibles", r.URL.Path)
		w.Write([]byte(`{"fechas_no_disponibles": ["2026-09-10"]}`))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/sessions/12/blocked-dates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BlockedDatesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"2026-09-10"}, resp.BlockedDates)
}

func TestSlotsEndpointRejectsInvalidDate(t *testing.T) {
	router := newScheduleRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid dates must not reach the platform")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/sessions/12/schedules?date=15/09/2026", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableEndpoint(t *testing.T) {
	router := newScheduleRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/horario-escuela/5", r.URL.Path)
		w.Write([]byte(`{"horarios": [
			{"escuela_id": 5, "dia_semana": "Lunes", "total_horarios": 1, "horarios_completos": "08:00 - 10:00", "grupos": 1}
		]}`))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/courses/5/timetable", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TimetableResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "Lunes", resp.Days[0].DayOfWeek)
	assert.JSONEq(t, `[{"e": 5, "d": "Lun", "t": 1, "h": "08:00 - 10:00", "g": 1}]`, resp.Compact)
}
