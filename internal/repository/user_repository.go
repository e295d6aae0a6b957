package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"artculture/internal/models"
	"artculture/internal/pagination"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
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

type UpdateProfileRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Bio         string `json:"bio"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	Postcode    string `json:"postcode"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, email, password_hash, role, title, bio, image_url,
			country, city, street, house_number, postcode, latitude, longitude,
			refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (:user_id, :email, :password_hash, :role, :title, :bio, :image_url,
			:country, :city, :street, :house_number, :postcode, :latitude, :longitude,
			:refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("пользователь с email %s уже существует: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET title = :title, bio = :bio, image_url = :image_url,
			country = :country, city = :city, street = :street,
			house_number = :house_number, postcode = :postcode,
			latitude = :latitude, longitude = :longitude, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s: %w", user.UserID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, role, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении роли: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, page pagination.Page, role string) ([]models.User, error) {
	args := []interface{}{}
	where := ""
	if role != "" {
		where = "WHERE role = $1"
		args = append(args, role)
	}

	query := fmt.Sprintf(`SELECT * FROM users %s %s`, where, page.SQL())

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role, letter string) ([]models.User, error) {
	// letter - необязательный префикс названия для алфавитного просмотра
	query := `SELECT * FROM users WHERE role = $1 ORDER BY title ASC`
	args := []interface{}{role}
	if letter != "" {
		query = `SELECT * FROM users WHERE role = $1 AND title ILIKE $2 ORDER BY title ASC`
		args = append(args, letter+"%")
	}

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей по роли: %w", err)
	}

	return users, nil
}

func (r *userRepository) SearchByRole(ctx context.Context, role, query string, limit int) ([]models.User, error) {
	// substring-поиск по фиксированному набору колонок, OR между ними
	sqlQuery := `
		SELECT * FROM users
		WHERE role = $1 AND (email ILIKE $2 OR title ILIKE $2)
		ORDER BY title ASC
		LIMIT $3
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, sqlQuery, role, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) TopLikedByRole(ctx context.Context, role string, limit int) ([]models.User, error) {
	query := `
		SELECT u.* FROM users u
		LEFT JOIN likes l ON l.liked_user_id = u.user_id
		WHERE u.role = $1
		GROUP BY u.user_id
		ORDER BY COUNT(l.like_id) DESC
		LIMIT $2
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, role, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("недействительный или просроченный refresh token")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, resetToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, resetToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении reset token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE reset_token = $1
		AND reset_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, resetToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("недействительный или просроченный reset token")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по reset token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	// новый пароль сбрасывает reset token
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expiry_time = NULL
		WHERE user_id = $2
	`

	_, err = r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пароля: %w", err)
	}

	return nil
}
