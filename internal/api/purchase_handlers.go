package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"agendamiento/internal/entities"
	"agendamiento/internal/service"
)

type PurchaseHandler struct {
	Service *service.PurchaseService
}

func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Service: svc}
}

// CreatePurchase runs one booking-and-payment flow. The result envelope is
// returned with 200 on completion and 422 on any stage failure; the body
// carries the stage and the user-facing message either way.
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req entities.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result := h.Service.Purchase(r.Context(), &req)

	w.Header().Set("Content-Type", "application/json")
	if !result.Success {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(result)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	purchase, err := h.Service.GetPurchaseByCode(code)
	if err != nil {
		http.Error(w, "Purchase not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchase)
}
