package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - ответ с одним текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// PageResponse - конверт для пагинированных списков
type PageResponse struct {
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Data     interface{} `json:"data"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError отображает ошибки бизнес-слоя на HTTP-статусы.
// Все ошибки, которые не входят в таксономию, уходят как 500.
func (h *Handlers) WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrBadLikeTarget):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrSelfRoleChange),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrBadRole):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pagination.ErrInvalidSortColumn),
		errors.Is(err, pagination.ErrInvalidSortDirection):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		if h.Cfg != nil && h.Cfg.DevMode {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
