package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"artculture/internal/models"
	"artculture/internal/pagination"
)

var (
	ErrNotFound      = errors.New("запись не найдена")
	ErrDuplicate     = errors.New("нарушение уникальности")
	ErrBadLikeTarget = errors.New("недопустимый тип цели лайка")
)

// isUniqueViolation - Postgres код 23505
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error
	List(ctx context.Context, page pagination.Page, role string) ([]models.User, error)
	ListByRole(ctx context.Context, role, letter string) ([]models.User, error)
	SearchByRole(ctx context.Context, role, query string, limit int) ([]models.User, error)
	TopLikedByRole(ctx context.Context, role string, limit int) ([]models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	SetResetToken(ctx context.Context, userID, resetToken string, expiryTime time.Time) error
	GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Post, error)
	ListAdmin(ctx context.Context, page pagination.Page, status, authorID string) ([]models.Post, error)
	ListPending(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListByAuthorRole(ctx context.Context, role string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	UpdateStatus(ctx context.Context, postID, status string) error
	TopLiked(ctx context.Context, limit int) ([]models.Post, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, productID string) (*models.Product, error)
	ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Product, error)
	ListAdmin(ctx context.Context, page pagination.Page, status, authorID string) ([]models.Product, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error)
	Search(ctx context.Context, query, authorID string, limit int) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID string) error
	UpdateStatus(ctx context.Context, productID, status string) error
	TopLiked(ctx context.Context, limit int) ([]models.Product, error)
}

type ExhibitionRepository interface {
	Create(ctx context.Context, exhibition *models.Exhibition) error
	GetByID(ctx context.Context, exhibitionID string) (*models.Exhibition, error)
	List(ctx context.Context, page pagination.Page) ([]models.Exhibition, error)
	ListByCreator(ctx context.Context, createdByID string) ([]models.Exhibition, error)
	Update(ctx context.Context, exhibition *models.Exhibition) error
	Delete(ctx context.Context, exhibitionID string) error
	Products(ctx context.Context, exhibitionID string) ([]models.Product, error)
	TopLiked(ctx context.Context, limit int) ([]models.Exhibition, error)
}

type LikeRepository interface {
	Toggle(ctx context.Context, userID, entityType, targetID string) (bool, error)
	Exists(ctx context.Context, userID, entityType, targetID string) (bool, error)
	Count(ctx context.Context, entityType, targetID string) (int, error)
}

type ArtTermRepository interface {
	Create(ctx context.Context, term *models.ArtTerm) error
	GetByID(ctx context.Context, termID string) (*models.ArtTerm, error)
	List(ctx context.Context, lang string) ([]models.ArtTerm, error)
	Last(ctx context.Context, limit int) ([]models.ArtTerm, error)
	ByLetter(ctx context.Context, letter string) ([]models.ArtTerm, error)
	Update(ctx context.Context, term *models.ArtTerm) error
	Delete(ctx context.Context, termID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID string) (*models.Image, error)
	GetByEntityID(ctx context.Context, entityID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
	DeleteByEntityID(ctx context.Context, entityID string) error
}

type StatsRepository interface {
	CountEntities(ctx context.Context) (map[string]int, error)
}

type Repository struct {
	User             UserRepository
	Post             PostRepository
	Product          ProductRepository
	Exhibition       ExhibitionRepository
	Like             LikeRepository
	ArtTerm          ArtTermRepository
	PostImages       ImageRepository
	ProductImages    ImageRepository
	ExhibitionImages ImageRepository
	Stats            StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:             NewUserRepository(db),
		Post:             NewPostRepository(db),
		Product:          NewProductRepository(db),
		Exhibition:       NewExhibitionRepository(db),
		Like:             NewLikeRepository(db),
		ArtTerm:          NewArtTermRepository(db),
		PostImages:       NewImageRepository(db, TablePostImages),
		ProductImages:    NewImageRepository(db, TableProductImages),
		ExhibitionImages: NewImageRepository(db, TableExhibitionImages),
		Stats:            NewStatsRepository(db),
	}
}
