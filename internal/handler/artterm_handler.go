package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/internal/models"
	"artculture/internal/repository"
)

func (h *Handlers) CreateArtTerm(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req repository.CreateArtTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.TitleEn == "" && req.TitleUk == "" {
		WriteError(w, "Название термина обязательно", http.StatusBadRequest)
		return
	}

	term, err := h.ArtTermService.CreateTerm(r.Context(), claims, req)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, term, http.StatusCreated)
}

func (h *Handlers) GetArtTerm(w http.ResponseWriter, r *http.Request) {
	term, err := h.ArtTermService.GetTerm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, term, http.StatusOK)
}

func (h *Handlers) ListArtTerms(w http.ResponseWriter, r *http.Request) {
	// неизвестный язык сводим к украинскому
	lang := r.URL.Query().Get("lang")
	if lang != "en" && lang != "uk" {
		lang = "uk"
	}

	terms, err := h.ArtTermService.ListByLang(r.Context(), lang)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, terms, http.StatusOK)
}

func (h *Handlers) LastArtTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.ArtTermService.LastTerms(r.Context())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, terms, http.StatusOK)
}

func (h *Handlers) ArtTermsByLetter(w http.ResponseWriter, r *http.Request) {
	letter := mux.Vars(r)["letter"]

	terms, err := h.ArtTermService.ByLetter(r.Context(), letter)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, terms, http.StatusOK)
}

func (h *Handlers) UpdateArtTerm(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var term models.ArtTerm
	if err := json.NewDecoder(r.Body).Decode(&term); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	term.TermID = mux.Vars(r)["id"]

	updated, err := h.ArtTermService.UpdateTerm(r.Context(), claims, &term)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeleteArtTerm(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.ArtTermService.DeleteTerm(r.Context(), claims, mux.Vars(r)["id"]); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Термин удален"}, http.StatusOK)
}
