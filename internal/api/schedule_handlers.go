package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"agendamiento/internal/client"
	"agendamiento/internal/service"
	"agendamiento/internal/utils"
)

type ScheduleHandler struct {
	Service *service.ScheduleService
	Rates   *client.RatesClient
}

func NewScheduleHandler(svc *service.ScheduleService, rates *client.RatesClient) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Rates: rates}
}

func (h *ScheduleHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	dates, err := h.Service.BlockedDates(r.Context(), sessionID, from, to)
	if err != nil {
		http.Error(w, "Could not load blocked dates", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BlockedDatesResponse{BlockedDates: dates})
}

func (h *ScheduleHandler) Slots(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	date := r.URL.Query().Get("date")
	if !utils.ValidDate(date) {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	list := h.Service.ResolveSlots(r.Context(), sessionID, date)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *ScheduleHandler) Timetable(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]
	days, compact, err := h.Service.WeeklyTimetable(r.Context(), courseID)
	if err != nil {
		http.Error(w, "Could not load timetable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TimetableResponse{Days: days, Compact: compact})
}

func (h *ScheduleHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates := h.Rates.Fetch(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rates)
}
