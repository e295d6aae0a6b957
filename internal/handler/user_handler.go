package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
)

// claimsFrom достает данные токена, положенные auth-middleware
func claimsFrom(r *http.Request) (access.Claims, bool) {
	return access.FromContext(r.Context())
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	req.UserID = mux.Vars(r)["id"]

	user, err := h.UserService.UpdateProfile(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

// колонки сортировки для публичных списков пользователей
var userSortColumns = pagination.Columns{
	{Name: "created_at", DefaultDir: "desc"},
	{Name: "title", DefaultDir: "asc"},
	{Name: "email", DefaultDir: "asc"},
}

func (h *Handlers) ListCreators(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListByRole(r.Context(), models.RoleCreator, r.URL.Query().Get("letter"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) ListMuseums(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListByRole(r.Context(), models.RoleMuseum, r.URL.Query().Get("letter"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) TopMuseums(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.TopLikedMuseums(r.Context(), topListLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}
