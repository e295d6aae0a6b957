package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"artculture/internal/models"
)

// Таблицы изображений, привязанные к своим сущностям
const (
	TablePostImages       = "post_images"
	TableProductImages    = "product_images"
	TableExhibitionImages = "exhibition_images"
)

var imageTables = map[string]bool{
	TablePostImages:       true,
	TableProductImages:    true,
	TableExhibitionImages: true,
}

type ImageRepositoryImpl struct {
	db    *sqlx.DB
	table string
}

// NewImageRepository создает репозиторий для одной из таблиц изображений.
// Неизвестное имя таблицы - ошибка программиста, паникуем при старте.
func NewImageRepository(db *sqlx.DB, table string) *ImageRepositoryImpl {
	if !imageTables[table] {
		panic(fmt.Sprintf("неизвестная таблица изображений: %s", table))
	}
	return &ImageRepositoryImpl{db: db, table: table}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (image_id, entity_id, image_url, created_at)
		VALUES (:image_id, :entity_id, :image_url, :created_at)
	`, r.table)

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("ошибка при создании изображения: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE image_id = $1`, r.table)

	var image models.Image
	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("изображение с ID %s: %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении изображения: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) GetByEntityID(ctx context.Context, entityID string) ([]models.Image, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE entity_id = $1 ORDER BY created_at`, r.table)

	var images []models.Image
	err := r.db.SelectContext(ctx, &images, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("изображение с ID %s: %w", imageID, ErrNotFound)
	}

	return nil
}

func (r *ImageRepositoryImpl) DeleteByEntityID(ctx context.Context, entityID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE entity_id = $1`, r.table)

	_, err := r.db.ExecContext(ctx, query, entityID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображений сущности: %w", err)
	}

	return nil
}
