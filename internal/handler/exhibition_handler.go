package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/pagination"
	"artculture/internal/service"
)

var exhibitionSortColumns = pagination.Columns{
	{Name: "start_date", DefaultDir: "desc"},
	{Name: "created_at", DefaultDir: "desc"},
	{Name: "title_en", DefaultDir: "asc"},
}

func (h *Handlers) CreateExhibition(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req service.CreateExhibitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	exhibition, err := h.ExhibitionService.CreateExhibition(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, exhibition, http.StatusCreated)
}

func (h *Handlers) GetExhibition(w http.ResponseWriter, r *http.Request) {
	exhibition, err := h.ExhibitionService.GetExhibition(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, exhibition, http.StatusOK)
}

func (h *Handlers) ListExhibitions(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query(), exhibitionSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	exhibitions, err := h.ExhibitionService.ListExhibitions(r.Context(), page)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: exhibitions}, http.StatusOK)
}

func (h *Handlers) MyExhibitions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	exhibitions, err := h.ExhibitionService.ListByCreator(r.Context(), claims.UserID)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, exhibitions, http.StatusOK)
}

func (h *Handlers) TopExhibitions(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.ExhibitionService.TopLiked(r.Context(), topListLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, exhibitions, http.StatusOK)
}

func (h *Handlers) ExhibitionProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ExhibitionService.Products(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, products, http.StatusOK)
}

func (h *Handlers) UpdateExhibition(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req service.UpdateExhibitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	req.ExhibitionID = mux.Vars(r)["id"]

	exhibition, err := h.ExhibitionService.UpdateExhibition(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, exhibition, http.StatusOK)
}

func (h *Handlers) DeleteExhibition(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.ExhibitionService.DeleteExhibition(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Выставка удалена"}, http.StatusOK)
}

func (h *Handlers) AddExhibitionImage(w http.ResponseWriter, r *http.Request) {
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

	image, err := h.ExhibitionService.AddImage(r.Context(), claims, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteExhibitionImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	if err := h.ExhibitionService.DeleteImage(r.Context(), claims, vars["id"], vars["imageId"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Изображение удалено"}, http.StatusOK)
}
