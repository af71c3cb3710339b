package api

import (
	"encoding/json"
	"net/http"

	"agendamiento/internal/repository"
)

type AdminHandler struct {
	Repo *repository.PurchaseRepository
}

func NewAdminHandler(repo *repository.PurchaseRepository) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

func (h *AdminHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	rail := r.URL.Query().Get("rail")
	purchases, err := h.Repo.ListPurchases(status, rail)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchases)
}
