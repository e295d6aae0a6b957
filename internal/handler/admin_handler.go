package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/models"
	"artculture/internal/pagination"
)

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query(), userSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	role := r.URL.Query().Get("role")

	users, err := h.UserService.ListUsers(r.Context(), page, role)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: users}, http.StatusOK)
}

func (h *Handlers) AdminChangeRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Role string `json:"role" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.ChangeRole(r.Context(), claims, mux.Vars(r)["id"], req.Role)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пользователь удален"}, http.StatusOK)
}

func (h *Handlers) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	page, err := pagination.Parse(r.URL.Query(), postSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	q := r.URL.Query()
	posts, err := h.PostService.ListAdmin(r.Context(), claims, page, q.Get("status"), q.Get("authorId"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: posts}, http.StatusOK)
}

func (h *Handlers) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	page, err := pagination.Parse(r.URL.Query(), productSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	q := r.URL.Query()
	products, err := h.ProductService.ListAdmin(r.Context(), claims, page, q.Get("status"), q.Get("authorId"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: products}, http.StatusOK)
}

func (h *Handlers) AdminPendingPosts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.ListPending(r.Context(), claims)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// decodeStatus - допустимы только конечные статусы модерации
func decodeStatus(r *http.Request) (string, bool) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	if req.Status != models.StatusApproved && req.Status != models.StatusRejected {
		return "", false
	}
	return req.Status, true
}

func (h *Handlers) AdminModeratePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	status, ok := decodeStatus(r)
	if !ok {
		WriteError(w, "Статус должен быть APPROVED или REJECTED", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Moderate(r.Context(), claims, mux.Vars(r)["id"], status)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) AdminModerateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	status, ok := decodeStatus(r)
	if !ok {
		WriteError(w, "Статус должен быть APPROVED или REJECTED", http.StatusBadRequest)
		return
	}

	product, err := h.ProductService.Moderate(r.Context(), claims, mux.Vars(r)["id"], status)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, product, http.StatusOK)
}

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	counts, err := h.StatsService.EntityCounts(r.Context(), claims)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, counts, http.StatusOK)
}
