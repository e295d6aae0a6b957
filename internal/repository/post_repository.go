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

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID  string `json:"author_id"`
	TitleEn   string `json:"title_en"`
	TitleUk   string `json:"title_uk"`
	ContentEn string `json:"content_en"`
	ContentUk string `json:"content_uk"`
}

type UpdatePostRequest struct {
	PostID    string `json:"post_id"`
	TitleEn   string `json:"title_en"`
	TitleUk   string `json:"title_uk"`
	ContentEn string `json:"content_en"`
	ContentUk string `json:"content_uk"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts
        (post_id, author_id, title_en, title_uk, content_en, content_uk, status, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :title_en, :title_uk, :content_en, :content_uk, :status, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Post, error) {
	args := []interface{}{models.StatusApproved}
	where := "WHERE status = $1"
	if authorID != "" {
		where += " AND author_id = $2"
		args = append(args, authorID)
	}

	query := fmt.Sprintf(`SELECT * FROM posts %s %s`, where, page.SQL())

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListAdmin(ctx context.Context, page pagination.Page, status, authorID string) ([]models.Post, error) {
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

	query := fmt.Sprintf(`SELECT * FROM posts %s %s`, where, page.SQL())

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListPending(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE status = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов на модерации: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByAuthorRole(ctx context.Context, role string) ([]models.Post, error) {
	query := `
		SELECT p.* FROM posts p
		JOIN users u ON u.user_id = p.author_id
		WHERE u.role = $1 AND p.status = $2
		ORDER BY p.created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, role, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов по роли автора: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET
			title_en = :title_en,
			title_uk = :title_uk,
			content_en = :content_en,
			content_uk = :content_uk,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) UpdateStatus(ctx context.Context, postID, status string) error {
	query := `
		UPDATE posts SET
			status = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, postID)
	if err != nil {
		return fmt.Errorf("ошибка при смене статуса поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) TopLiked(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT p.* FROM posts p
		LEFT JOIN likes l ON l.post_id = p.post_id
		GROUP BY p.post_id
		ORDER BY COUNT(l.like_id) DESC
		LIMIT $1
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении топа постов: %w", err)
	}

	return posts, nil
}
