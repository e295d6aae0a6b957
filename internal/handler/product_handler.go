package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/pagination"
	"artculture/internal/repository"
)

var productSortColumns = pagination.Columns{
	{Name: "created_at", DefaultDir: "desc"},
	{Name: "title_en", DefaultDir: "asc"},
	{Name: "date_of_creation", DefaultDir: "desc"},
	{Name: "status", DefaultDir: "asc"},
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.TitleEn == "" && req.TitleUk == "" {
		WriteError(w, "Название обязательно", http.StatusBadRequest)
		return
	}

	product, err := h.ProductService.CreateProduct(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, product, http.StatusCreated)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.ProductService.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, product, http.StatusOK)
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query(), productSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	products, err := h.ProductService.ListApproved(r.Context(), page, r.URL.Query().Get("authorId"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: products}, http.StatusOK)
}

func (h *Handlers) MyProducts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	products, err := h.ProductService.ListByAuthor(r.Context(), claims.UserID)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, products, http.StatusOK)
}

func (h *Handlers) TopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductService.TopLiked(r.Context(), topListLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, products, http.StatusOK)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	req.ProductID = mux.Vars(r)["id"]

	product, err := h.ProductService.UpdateProduct(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, product, http.StatusOK)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.ProductService.DeleteProduct(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Картина удалена"}, http.StatusOK)
}

func (h *Handlers) AddProductImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Файл image обязателен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.ProductService.AddImage(r.Context(), claims, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	if err := h.ProductService.DeleteImage(r.Context(), claims, vars["id"], vars["imageId"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Изображение удалено"}, http.StatusOK)
}
