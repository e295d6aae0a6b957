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

type ProductRepositoryImpl struct {
	db *sqlx.DB
}

type CreateProductRequest struct {
	AuthorID       string `json:"author_id"`
	TitleEn        string `json:"title_en"`
	TitleUk        string `json:"title_uk"`
	DescriptionEn  string `json:"description_en"`
	DescriptionUk  string `json:"description_uk"`
	SpecsEn        string `json:"specs_en"`
	SpecsUk        string `json:"specs_uk"`
	StyleEn        string `json:"style_en"`
	StyleUk        string `json:"style_uk"`
	TechniqueEn    string `json:"technique_en"`
	TechniqueUk    string `json:"technique_uk"`
	Size           string `json:"size"`
	DateOfCreation string `json:"dateOfCreation"`
}

type UpdateProductRequest struct {
	ProductID      string `json:"product_id"`
	TitleEn        string `json:"title_en"`
	TitleUk        string `json:"title_uk"`
	DescriptionEn  string `json:"description_en"`
	DescriptionUk  string `json:"description_uk"`
	SpecsEn        string `json:"specs_en"`
	SpecsUk        string `json:"specs_uk"`
	StyleEn        string `json:"style_en"`
	StyleUk        string `json:"style_uk"`
	TechniqueEn    string `json:"technique_en"`
	TechniqueUk    string `json:"technique_uk"`
	Size           string `json:"size"`
	DateOfCreation string `json:"dateOfCreation"`
}

func NewProductRepository(db *sqlx.DB) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *models.Product) error {
	if product.ProductID == "" {
		product.ProductID = uuid.New().String()
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
        INSERT INTO products
        (product_id, author_id, title_en, title_uk, description_en, description_uk,
         specs_en, specs_uk, style_en, style_uk, technique_en, technique_uk,
         size, date_of_creation, status, created_at, updated_at)
        VALUES
        (:product_id, :author_id, :title_en, :title_uk, :description_en, :description_uk,
         :specs_en, :specs_uk, :style_en, :style_uk, :technique_en, :technique_uk,
         :size, :date_of_creation, :status, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("ошибка при создании картины: %w", err)
	}

	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	query := `SELECT * FROM products WHERE product_id = $1`

	var product models.Product
	err := r.db.GetContext(ctx, &product, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("картина с ID %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении картины: %w", err)
	}

	return &product, nil
}

func (r *ProductRepositoryImpl) ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Product, error) {
	args := []interface{}{models.StatusApproved}
	where := "WHERE status = $1"
	if authorID != "" {
		where += " AND author_id = $2"
		args = append(args, authorID)
	}

	query := fmt.Sprintf(`SELECT * FROM products %s %s`, where, page.SQL())

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении картин: %w", err)
	}

	return products, nil
}

func (r *ProductRepositoryImpl) ListAdmin(ctx context.Context, page pagination.Page, status, authorID string) ([]models.Product, error) {
	args := []interface{}{}
	where := ""
	add := func(cond string, val interface{}) {
		args = append(args, val)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if status != "" {
		add("status = $%d", status)
	}
	if authorID != "" {
		add("author_id = $%d", authorID)
	}

	query := fmt.Sprintf(`SELECT * FROM products %s %s`, where, page.SQL())

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении картин: %w", err)
	}

	return products, nil
}

func (r *ProductRepositoryImpl) ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error) {
	query := `SELECT * FROM products WHERE author_id = $1 ORDER BY created_at DESC`

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении картин автора: %w", err)
	}

	return products, nil
}

func (r *ProductRepositoryImpl) Search(ctx context.Context, query, authorID string, limit int) ([]models.Product, error) {
	// substring-поиск по фиксированному набору двуязычных колонок
	args := []interface{}{"%" + query + "%"}
	where := `WHERE status = 'APPROVED' AND
		(title_en ILIKE $1 OR title_uk ILIKE $1 OR description_en ILIKE $1 OR description_uk ILIKE $1)`
	if authorID != "" {
		where += " AND author_id = $2"
		args = append(args, authorID)
	}
	args = append(args, limit)

	sqlQuery := fmt.Sprintf(`SELECT * FROM products %s ORDER BY created_at DESC LIMIT $%d`, where, len(args))

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске картин: %w", err)
	}

	return products, nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	query := `
		UPDATE products SET
			title_en = :title_en,
			title_uk = :title_uk,
			description_en = :description_en,
			description_uk = :description_uk,
			specs_en = :specs_en,
			specs_uk = :specs_uk,
			style_en = :style_en,
			style_uk = :style_uk,
			technique_en = :technique_en,
			technique_uk = :technique_uk,
			size = :size,
			date_of_creation = :date_of_creation,
			updated_at = :updated_at
		WHERE product_id = :product_id
	`

	result, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении картины: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("картина с ID %s: %w", product.ProductID, ErrNotFound)
	}

	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1`

	result, err := r.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении картины: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("картина с ID %s: %w", productID, ErrNotFound)
	}

	return nil
}

func (r *ProductRepositoryImpl) UpdateStatus(ctx context.Context, productID, status string) error {
	query := `
		UPDATE products SET
			status = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, productID)
	if err != nil {
		return fmt.Errorf("ошибка при смене статуса картины: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("картина с ID %s: %w", productID, ErrNotFound)
	}

	return nil
}

func (r *ProductRepositoryImpl) TopLiked(ctx context.Context, limit int) ([]models.Product, error) {
	query := `
		SELECT p.* FROM products p
		LEFT JOIN likes l ON l.product_id = p.product_id
		GROUP BY p.product_id
		ORDER BY COUNT(l.like_id) DESC
		LIMIT $1
	`

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа картин: %w", err)
	}

	return products, nil
}
