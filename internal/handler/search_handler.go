package handlers

import (
	"net/http"

	"artculture/internal/models"
)

const searchLimit = 20

func (h *Handlers) SearchCreators(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteSuccess(w, []models.User{}, http.StatusOK)
		return
	}

	users, err := h.UserService.SearchByRole(r.Context(), models.RoleCreator, query, searchLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) SearchMuseums(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteSuccess(w, []models.User{}, http.StatusOK)
		return
	}

	users, err := h.UserService.SearchByRole(r.Context(), models.RoleMuseum, query, searchLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		WriteSuccess(w, []models.Product{}, http.StatusOK)
		return
	}

	products, err := h.ProductService.Search(r.Context(), query, q.Get("authorId"), searchLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, products, http.StatusOK)
}
