package handlers

import (
	"encoding/json"
	"net/http"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/repository"
)

type RegisterRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Street      string   `json:"street"`
	HouseNumber string   `json:"house_number"`
	Postcode    string   `json:"postcode"`
	Latitude    *float64 `json:"lat"`
	Longitude   *float64 `json:"lon"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if !access.ValidRole(req.Role) {
		WriteError(w, "Неизвестная роль", http.StatusBadRequest)
		return
	}
	// админа через публичную регистрацию не создать
	if req.Role == models.RoleAdmin {
		WriteError(w, "Недопустимая роль", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Title:       req.Title,
		Bio:         req.Bio,
		Country:     req.Country,
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		Postcode:    req.Postcode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	_, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Неверный email или пароль", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusOK)
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, "Недействительный refresh-токен", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, http.StatusOK)
}

func (h *Handlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// сервис отвечает одинаково для любого email, чтобы не раскрывать аккаунты
	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Если аккаунт существует, письмо отправлено"}, http.StatusOK)
}

func (h *Handlers) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ConfirmPasswordReset(r.Context(), req.Token, req.Password); err != nil {
		WriteError(w, "Недействительный или просроченный токен", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пароль обновлен"}, http.StatusOK)
}
