package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, claims access.Claims, req repository.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Post, error)
	ListAdmin(ctx context.Context, claims access.Claims, page pagination.Page, status, authorID string) ([]models.Post, error)
	ListPending(ctx context.Context, claims access.Claims) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListByAuthorRole(ctx context.Context, role string) ([]models.Post, error)
	TopLiked(ctx context.Context, limit int) ([]models.Post, error)
	UpdatePost(ctx context.Context, claims access.Claims, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, claims access.Claims, postID string) error
	Moderate(ctx context.Context, claims access.Claims, postID, status string) (*models.Post, error)
	AddImage(ctx context.Context, claims access.Claims, postID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, claims access.Claims, postID, imageID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
	}
}

func (s *postService) CreatePost(ctx context.Context, claims access.Claims, req repository.CreatePostRequest) (*models.Post, error) {
	// владелец всегда берется из токена, не из тела запроса
	post := &models.Post{
		AuthorID:  claims.UserID,
		TitleEn:   req.TitleEn,
		TitleUk:   req.TitleUk,
		ContentEn: req.ContentEn,
		ContentUk: req.ContentUk,
		Status:    models.StatusPending,
	}

	err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetByEntityID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (s *postService) ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Post, error) {
	return s.postRepo.ListApproved(ctx, page, authorID)
}

func (s *postService) ListAdmin(ctx context.Context, claims access.Claims, page pagination.Page, status, authorID string) ([]models.Post, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}
	return s.postRepo.ListAdmin(ctx, page, status, authorID)
}

func (s *postService) ListPending(ctx context.Context, claims access.Claims) ([]models.Post, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}
	return s.postRepo.ListPending(ctx)
}

func (s *postService) TopLiked(ctx context.Context, limit int) ([]models.Post, error) {
	return s.postRepo.TopLiked(ctx, limit)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

func (s *postService) ListByAuthorRole(ctx context.Context, role string) ([]models.Post, error) {
	return s.postRepo.ListByAuthorRole(ctx, role)
}

func (s *postService) UpdatePost(ctx context.Context, claims access.Claims, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, post.AuthorID) {
		return nil, ErrForbidden
	}

	post.TitleEn = req.TitleEn
	post.TitleUk = req.TitleUk
	post.ContentEn = req.ContentEn
	post.ContentUk = req.ContentUk

	err = s.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, claims access.Claims, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, post.AuthorID) {
		return ErrForbidden
	}

	// сначала чистим изображения, запись в БД уходит каскадом
	images, err := s.imageRepo.GetByEntityID(ctx, postID)
	if err != nil {
		return err
	}
	for _, image := range images {
		if objectName, ok := objectNameFromURL(image.ImageURL); ok {
			if err := s.storage.DeleteImage(ctx, objectName); err != nil {
				log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
			}
		}
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) Moderate(ctx context.Context, claims access.Claims, postID, status string) (*models.Post, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}

	err := s.postRepo.UpdateStatus(ctx, postID, status)
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) AddImage(ctx context.Context, claims access.Claims, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, post.AuthorID) {
		return nil, ErrForbidden
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, "posts/"+postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	image := &models.Image{
		EntityID: postID,
		ImageURL: imageURL,
	}

	err = s.imageRepo.Create(ctx, image)
	if err != nil {
		// запись в БД не появилась - убираем объект, чтобы не висел сиротой
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	return image, nil
}

func (s *postService) DeleteImage(ctx context.Context, claims access.Claims, postID, imageID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, post.AuthorID) {
		return ErrForbidden
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	if objectName, ok := objectNameFromURL(image.ImageURL); ok {
		if err := s.storage.DeleteImage(ctx, objectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
		}
	}

	return s.imageRepo.Delete(ctx, imageID)
}

// objectNameFromURL выделяет имя объекта из публичного URL вида
// http://host/bucket/object/path
func objectNameFromURL(imageURL string) (string, bool) {
	parts := strings.SplitN(imageURL, "//", 2)
	if len(parts) == 2 {
		imageURL = parts[1]
	}

	segments := strings.SplitN(imageURL, "/", 3)
	if len(segments) < 3 || segments[2] == "" {
		return "", false
	}

	return segments[2], true
}
