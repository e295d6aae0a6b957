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
	"artculture/internal/pagination"
)

type ExhibitionRepositoryImpl struct {
	db *sqlx.DB
}

func NewExhibitionRepository(db *sqlx.DB) *ExhibitionRepositoryImpl {
	return &ExhibitionRepositoryImpl{db: db}
}

func (r *ExhibitionRepositoryImpl) Create(ctx context.Context, exhibition *models.Exhibition) error {
	if exhibition.ExhibitionID == "" {
		exhibition.ExhibitionID = uuid.New().String()
	}

	now := time.Now()
	exhibition.CreatedAt = now
	exhibition.UpdatedAt = now

	// выставка и join-строки создаются одной транзакцией
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO exhibitions
		(exhibition_id, created_by_id, title_en, title_uk, description_en, description_uk,
		 location_en, location_uk, start_date, end_date, time, end_time, address,
		 latitude, longitude, created_at, updated_at)
		VALUES
		(:exhibition_id, :created_by_id, :title_en, :title_uk, :description_en, :description_uk,
		 :location_en, :location_uk, :start_date, :end_date, :time, :end_time, :address,
		 :latitude, :longitude, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, exhibition)
	if err != nil {
		return fmt.Errorf("ошибка при создании выставки: %w", err)
	}

	for _, artistID := range exhibition.ArtistIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exhibition_artists (exhibition_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			exhibition.ExhibitionID, artistID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке художника: %w", err)
		}
	}

	for _, productID := range exhibition.ProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exhibition_products (exhibition_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			exhibition.ExhibitionID, productID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке картины: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ExhibitionRepositoryImpl) GetByID(ctx context.Context, exhibitionID string) (*models.Exhibition, error) {
	query := `SELECT * FROM exhibitions WHERE exhibition_id = $1`

	var exhibition models.Exhibition
	err := r.db.GetContext(ctx, &exhibition, query, exhibitionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("выставка с ID %s: %w", exhibitionID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении выставки: %w", err)
	}

	if err := r.loadAssociations(ctx, &exhibition); err != nil {
		return nil, err
	}

	return &exhibition, nil
}

func (r *ExhibitionRepositoryImpl) loadAssociations(ctx context.Context, exhibition *models.Exhibition) error {
	err := r.db.SelectContext(ctx, &exhibition.ArtistIDs,
		`SELECT artist_id FROM exhibition_artists WHERE exhibition_id = $1`, exhibition.ExhibitionID)
	if err != nil {
		return fmt.Errorf("ошибка при получении художников выставки: %w", err)
	}

	err = r.db.SelectContext(ctx, &exhibition.ProductIDs,
		`SELECT product_id FROM exhibition_products WHERE exhibition_id = $1`, exhibition.ExhibitionID)
	if err != nil {
		return fmt.Errorf("ошибка при получении картин выставки: %w", err)
	}

	return nil
}

func (r *ExhibitionRepositoryImpl) List(ctx context.Context, page pagination.Page) ([]models.Exhibition, error) {
	query := fmt.Sprintf(`SELECT * FROM exhibitions %s`, page.SQL())

	var exhibitions []models.Exhibition
	err := r.db.SelectContext(ctx, &exhibitions, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении выставок: %w", err)
	}

	return exhibitions, nil
}

func (r *ExhibitionRepositoryImpl) ListByCreator(ctx context.Context, createdByID string) ([]models.Exhibition, error) {
	query := `SELECT * FROM exhibitions WHERE created_by_id = $1 ORDER BY start_date DESC`

	var exhibitions []models.Exhibition
	err := r.db.SelectContext(ctx, &exhibitions, query, createdByID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении выставок пользователя: %w", err)
	}

	return exhibitions, nil
}

func (r *ExhibitionRepositoryImpl) Update(ctx context.Context, exhibition *models.Exhibition) error {
	exhibition.UpdatedAt = time.Now()

	// поля выставки и join-строки переписываются одной транзакцией,
	// иначе ответ хендлера разойдется с последующим GET
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE exhibitions SET
			title_en = :title_en,
			title_uk = :title_uk,
			description_en = :description_en,
			description_uk = :description_uk,
			location_en = :location_en,
			location_uk = :location_uk,
			start_date = :start_date,
			end_date = :end_date,
			time = :time,
			end_time = :end_time,
			address = :address,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE exhibition_id = :exhibition_id
	`

	result, err := tx.NamedExecContext(ctx, query, exhibition)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении выставки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("выставка с ID %s: %w", exhibition.ExhibitionID, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM exhibition_artists WHERE exhibition_id = $1`, exhibition.ExhibitionID)
	if err != nil {
		return fmt.Errorf("ошибка при очистке художников выставки: %w", err)
	}

	for _, artistID := range exhibition.ArtistIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exhibition_artists (exhibition_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			exhibition.ExhibitionID, artistID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке художника: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM exhibition_products WHERE exhibition_id = $1`, exhibition.ExhibitionID)
	if err != nil {
		return fmt.Errorf("ошибка при очистке картин выставки: %w", err)
	}

	for _, productID := range exhibition.ProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exhibition_products (exhibition_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			exhibition.ExhibitionID, productID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке картины: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ExhibitionRepositoryImpl) Delete(ctx context.Context, exhibitionID string) error {
	query := `DELETE FROM exhibitions WHERE exhibition_id = $1`

	result, err := r.db.ExecContext(ctx, query, exhibitionID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении выставки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("выставка с ID %s: %w", exhibitionID, ErrNotFound)
	}

	return nil
}

func (r *ExhibitionRepositoryImpl) Products(ctx context.Context, exhibitionID string) ([]models.Product, error) {
	// сначала проверяем, что выставка существует
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM exhibitions WHERE exhibition_id = $1)`, exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке выставки: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("выставка с ID %s: %w", exhibitionID, ErrNotFound)
	}

	query := `
		SELECT p.* FROM products p
		JOIN exhibition_products ep ON ep.product_id = p.product_id
		WHERE ep.exhibition_id = $1
		ORDER BY p.created_at DESC
	`

	var products []models.Product
	err = r.db.SelectContext(ctx, &products, query, exhibitionID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении картин выставки: %w", err)
	}

	return products, nil
}

func (r *ExhibitionRepositoryImpl) TopLiked(ctx context.Context, limit int) ([]models.Exhibition, error) {
	query := `
		SELECT e.* FROM exhibitions e
		LEFT JOIN likes l ON l.exhibition_id = e.exhibition_id
		GROUP BY e.exhibition_id
		ORDER BY COUNT(l.like_id) DESC
		LIMIT $1
	`

	var exhibitions []models.Exhibition
	err := r.db.SelectContext(ctx, &exhibitions, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа выставок: %w", err)
	}

	return exhibitions, nil
}
