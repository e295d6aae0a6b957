package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"artculture/internal/access"
	"artculture/internal/config"
	"artculture/internal/mailer"
	"artculture/internal/models"
	"artculture/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, resetToken, newPassword string) error
	ValidateToken(tokenString string) (*jwt.Token, error)
	ClaimsFromToken(tokenString string) (access.Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	mail     mailer.Mailer
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, mail mailer.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		mail:     mail,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Email:                  req.Email,
		Role:                   req.Role,
		Title:                  req.Title,
		Bio:                    req.Bio,
		Country:                req.Country,
		City:                   req.City,
		Street:                 req.Street,
		HouseNumber:            req.HouseNumber,
		Postcode:               req.Postcode,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	if req.Latitude != nil {
		user.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}
	if req.Longitude != nil {
		user.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	// уникальность email обеспечивает БД, гонку двух регистраций решает она же
	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	newRefreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, newRefreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка обновления refresh token: %w", err)
	}

	return user, accessToken, newRefreshToken, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// не раскрываем, существует ли email
		log.Printf("Запрос сброса пароля для неизвестного email: %s", email)
		return nil
	}

	resetToken := uuid.New().String()
	expiryTime := time.Now().Add(s.cfg.ResetTokenDuration)

	err = s.userRepo.SetResetToken(ctx, user.UserID, resetToken, expiryTime)
	if err != nil {
		return fmt.Errorf("ошибка сохранения reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.ClientOrigin, resetToken)
	text := fmt.Sprintf("Для сброса пароля перейдите по ссылке: %s\nСсылка действует 1 час.", resetLink)
	html := fmt.Sprintf(`<p>Для сброса пароля перейдите по <a href="%s">ссылке</a>.</p><p>Ссылка действует 1 час.</p>`, resetLink)

	err = s.mail.Send(user.Email, "Сброс пароля", text, html)
	if err != nil {
		return fmt.Errorf("не удалось отправить письмо: %w", err)
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, resetToken, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, resetToken)
	if err != nil {
		return fmt.Errorf("недействительный reset token: %w", err)
	}

	err = s.userRepo.UpdatePassword(ctx, user.UserID, newPassword)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	return nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	// отсутствие секрета - ошибка конфигурации, токен не выпускается
	if s.cfg.JWTSecretKey == "" {
		return "", fmt.Errorf("JWT_SECRET_KEY не настроен")
	}

	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

func (s *authService) ClaimsFromToken(tokenString string) (access.Claims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return access.Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return access.Claims{}, fmt.Errorf("неверный формат claims")
	}

	userID, ok1 := mapClaims["userId"].(string)
	email, ok2 := mapClaims["email"].(string)
	role, ok3 := mapClaims["role"].(string)
	if !ok1 || !ok2 || !ok3 {
		return access.Claims{}, fmt.Errorf("неверные данные в токене")
	}

	return access.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
