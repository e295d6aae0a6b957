package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/pagination"
	"artculture/internal/repository"
)

const topListLimit = 10

var postSortColumns = pagination.Columns{
	{Name: "created_at", DefaultDir: "desc"},
	{Name: "title_en", DefaultDir: "asc"},
	{Name: "status", DefaultDir: "asc"},
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.TitleEn == "" && req.TitleUk == "" {
		WriteError(w, "Заголовок обязателен", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r.URL.Query(), postSortColumns)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	posts, err := h.PostService.ListApproved(r.Context(), page, r.URL.Query().Get("authorId"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PageResponse{Page: page.Page, PageSize: page.PageSize, Data: posts}, http.StatusOK)
}

func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.ListByAuthor(r.Context(), claims.UserID)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) PostsByAuthorRole(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		WriteError(w, "Параметр role обязателен", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.ListByAuthorRole(r.Context(), role)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) TopPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.TopLiked(r.Context(), topListLimit)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	req.PostID = mux.Vars(r)["id"]

	post, err := h.PostService.UpdatePost(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост удален"}, http.StatusOK)
}

func (h *Handlers) AddPostImage(w http.ResponseWriter, r *http.Request) {
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

	image, err := h.PostService.AddImage(r.Context(), claims, mux.Vars(r)["id"], header.Filename, file, header.Size)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeletePostImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	if err := h.PostService.DeleteImage(r.Context(), claims, vars["id"], vars["imageId"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Изображение удалено"}, http.StatusOK)
}
