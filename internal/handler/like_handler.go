package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	status, err := h.LikeService.Toggle(r.Context(), claims, vars["type"], vars["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, status, http.StatusOK)
}

func (h *Handlers) LikeStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	status, err := h.LikeService.Status(r.Context(), claims, vars["type"], vars["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, status, http.StatusOK)
}

func (h *Handlers) LikeCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	count, err := h.LikeService.Count(r.Context(), vars["type"], vars["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]int{"likeCount": count}, http.StatusOK)
}
