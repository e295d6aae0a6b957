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

type artTermRepository struct {
	db *sqlx.DB
}

type CreateArtTermRequest struct {
	TitleEn       string `json:"title_en"`
	TitleUk       string `json:"title_uk"`
	DescriptionEn string `json:"description_en"`
	DescriptionUk string `json:"description_uk"`
}

func NewArtTermRepository(db *sqlx.DB) ArtTermRepository {
	return &artTermRepository{db: db}
}

func (r *artTermRepository) Create(ctx context.Context, term *models.ArtTerm) error {
	if term.TermID == "" {
		term.TermID = uuid.New().String()
	}

	now := time.Now()
	term.CreatedAt = now
	term.UpdatedAt = now

	query := `
		INSERT INTO art_terms (term_id, title_en, title_uk, description_en, description_uk, created_at, updated_at)
		VALUES (:term_id, :title_en, :title_uk, :description_en, :description_uk, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, term)
	if err != nil {
		return fmt.Errorf("ошибка при создании термина: %w", err)
	}

	return nil
}

func (r *artTermRepository) GetByID(ctx context.Context, termID string) (*models.ArtTerm, error) {
	query := `SELECT * FROM art_terms WHERE term_id = $1`

	var term models.ArtTerm
	err := r.db.GetContext(ctx, &term, query, termID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("термин с ID %s: %w", termID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении термина: %w", err)
	}

	return &term, nil
}

func (r *artTermRepository) List(ctx context.Context, lang string) ([]models.ArtTerm, error) {
	// сортировка по названию на выбранном языке, колонка из закрытого набора
	orderColumn := "title_en"
	if lang == "uk" {
		orderColumn = "title_uk"
	}

	query := fmt.Sprintf(`SELECT * FROM art_terms ORDER BY %s ASC`, orderColumn)

	var terms []models.ArtTerm
	err := r.db.SelectContext(ctx, &terms, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении терминов: %w", err)
	}

	return terms, nil
}

func (r *artTermRepository) Last(ctx context.Context, limit int) ([]models.ArtTerm, error) {
	query := `SELECT * FROM art_terms ORDER BY created_at DESC LIMIT $1`

	var terms []models.ArtTerm
	err := r.db.SelectContext(ctx, &terms, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении последних терминов: %w", err)
	}

	return terms, nil
}

func (r *artTermRepository) ByLetter(ctx context.Context, letter string) ([]models.ArtTerm, error) {
	query := `
		SELECT * FROM art_terms
		WHERE title_en ILIKE $1 OR title_uk ILIKE $1
		ORDER BY title_en ASC
	`

	var terms []models.ArtTerm
	err := r.db.SelectContext(ctx, &terms, query, letter+"%")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении терминов по букве: %w", err)
	}

	return terms, nil
}

func (r *artTermRepository) Update(ctx context.Context, term *models.ArtTerm) error {
	term.UpdatedAt = time.Now()

	query := `
		UPDATE art_terms SET
			title_en = :title_en,
			title_uk = :title_uk,
			description_en = :description_en,
			description_uk = :description_uk,
			updated_at = :updated_at
		WHERE term_id = :term_id
	`

	result, err := r.db.NamedExecContext(ctx, query, term)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении термина: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("термин с ID %s: %w", term.TermID, ErrNotFound)
	}

	return nil
}

func (r *artTermRepository) Delete(ctx context.Context, termID string) error {
	query := `DELETE FROM art_terms WHERE term_id = $1`

	result, err := r.db.ExecContext(ctx, query, termID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении термина: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("термин с ID %s: %w", termID, ErrNotFound)
	}

	return nil
}
