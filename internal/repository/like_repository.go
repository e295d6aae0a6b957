package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

// likeColumns - отображение типа цели в колонку таблицы likes.
// Имя колонки берется только отсюда, никогда из запроса.
var likeColumns = map[string]string{
	"post":       "post_id",
	"product":    "product_id",
	"exhibition": "exhibition_id",
	"user":       "liked_user_id",
	"creator":    "liked_user_id",
	"museum":     "liked_user_id",
}

// LikeTargetColumn возвращает колонку для типа цели
func LikeTargetColumn(entityType string) (string, bool) {
	column, ok := likeColumns[entityType]
	return column, ok
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle переключает лайк для пары (пользователь, цель). Возвращает true,
// если после операции лайк стоит. Сначала пробуем удалить существующую
// строку; ноль удаленных строк значит, что лайка не было, и мы его создаем.
// Конкурентная вставка перехватывается уникальным индексом: нарушение
// уникальности трактуется как "уже лайкнуто", а не как ошибка.
func (r *likeRepository) Toggle(ctx context.Context, userID, entityType, targetID string) (bool, error) {
	column, ok := LikeTargetColumn(entityType)
	if !ok {
		return false, ErrBadLikeTarget
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM likes WHERE user_id = $1 AND %s = $2`, column)

	result, err := r.db.ExecContext(ctx, deleteQuery, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected > 0 {
		// лайк был - сняли
		return false, nil
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO likes (like_id, user_id, %s, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
		column)

	_, err = r.db.ExecContext(ctx, insertQuery, uuid.New().String(), userID, targetID)
	if err != nil {
		if isUniqueViolation(err) {
			// гонка двух toggle: лайк уже поставлен параллельным запросом
			return true, nil
		}
		return false, fmt.Errorf("ошибка при создании лайка: %w", err)
	}

	return true, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, entityType, targetID string) (bool, error) {
	column, ok := LikeTargetColumn(entityType)
	if !ok {
		return false, ErrBadLikeTarget
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND %s = $2)`, column)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	return exists, nil
}

func (r *likeRepository) Count(ctx context.Context, entityType, targetID string) (int, error) {
	column, ok := LikeTargetColumn(entityType)
	if !ok {
		return 0, ErrBadLikeTarget
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM likes WHERE %s = $1`, column)

	var count int
	err := r.db.GetContext(ctx, &count, query, targetID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете лайков: %w", err)
	}

	return count, nil
}
