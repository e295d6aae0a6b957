package handlers

import (
	"net/http"
)

// SearchAddress проксирует геокодер; отказ внешнего сервиса не фатален
func (h *Handlers) SearchAddress(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	addresses, err := h.Services.Geo.SearchAddress(r.Context(), query)
	if err != nil {
		WriteError(w, "Сервис геокодирования недоступен", http.StatusBadGateway)
		return
	}

	WriteSuccess(w, addresses, http.StatusOK)
}
