package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/storage"
)

type ProductService interface {
	CreateProduct(ctx context.Context, claims access.Claims, req repository.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Product, error)
	ListAdmin(ctx context.Context, claims access.Claims, page pagination.Page, status, authorID string) ([]models.Product, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error)
	Search(ctx context.Context, query, authorID string, limit int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, claims access.Claims, req repository.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, claims access.Claims, productID string) error
	Moderate(ctx context.Context, claims access.Claims, productID, status string) (*models.Product, error)
	TopLiked(ctx context.Context, limit int) ([]models.Product, error)
	AddImage(ctx context.Context, claims access.Claims, productID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, claims access.Claims, productID, imageID string) error
}

type productService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ImageRepository
	storage     storage.Storage
}

func NewProductService(productRepo repository.ProductRepository, imageRepo repository.ImageRepository, storage storage.Storage) ProductService {
	return &productService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		storage:     storage,
	}
}

func (s *productService) CreateProduct(ctx context.Context, claims access.Claims, req repository.CreateProductRequest) (*models.Product, error) {
	if !access.CanCreateProduct(claims.Role) {
		return nil, ErrForbidden
	}

	product := &models.Product{
		AuthorID:       claims.UserID,
		TitleEn:        req.TitleEn,
		TitleUk:        req.TitleUk,
		DescriptionEn:  req.DescriptionEn,
		DescriptionUk:  req.DescriptionUk,
		SpecsEn:        req.SpecsEn,
		SpecsUk:        req.SpecsUk,
		StyleEn:        req.StyleEn,
		StyleUk:        req.StyleUk,
		TechniqueEn:    req.TechniqueEn,
		TechniqueUk:    req.TechniqueUk,
		Size:           req.Size,
		DateOfCreation: req.DateOfCreation,
		Status:         models.StatusPending,
	}

	err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetByEntityID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Images = images

	return product, nil
}

func (s *productService) ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Product, error) {
	return s.productRepo.ListApproved(ctx, page, authorID)
}

func (s *productService) ListAdmin(ctx context.Context, claims access.Claims, page pagination.Page, status, authorID string) ([]models.Product, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}
	return s.productRepo.ListAdmin(ctx, page, status, authorID)
}

func (s *productService) ListByAuthor(ctx context.Context, authorID string) ([]models.Product, error) {
	return s.productRepo.ListByAuthor(ctx, authorID)
}

func (s *productService) Search(ctx context.Context, query, authorID string, limit int) ([]models.Product, error) {
	return s.productRepo.Search(ctx, query, authorID, limit)
}

func (s *productService) UpdateProduct(ctx context.Context, claims access.Claims, req repository.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, product.AuthorID) {
		return nil, ErrForbidden
	}

	product.TitleEn = req.TitleEn
	product.TitleUk = req.TitleUk
	product.DescriptionEn = req.DescriptionEn
	product.DescriptionUk = req.DescriptionUk
	product.SpecsEn = req.SpecsEn
	product.SpecsUk = req.SpecsUk
	product.StyleEn = req.StyleEn
	product.StyleUk = req.StyleUk
	product.TechniqueEn = req.TechniqueEn
	product.TechniqueUk = req.TechniqueUk
	product.Size = req.Size
	product.DateOfCreation = req.DateOfCreation

	err = s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, claims access.Claims, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, product.AuthorID) {
		return ErrForbidden
	}

	images, err := s.imageRepo.GetByEntityID(ctx, productID)
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

	return s.productRepo.Delete(ctx, productID)
}

func (s *productService) Moderate(ctx context.Context, claims access.Claims, productID, status string) (*models.Product, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}

	err := s.productRepo.UpdateStatus(ctx, productID, status)
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, productID)
}

func (s *productService) TopLiked(ctx context.Context, limit int) ([]models.Product, error) {
	return s.productRepo.TopLiked(ctx, limit)
}

func (s *productService) AddImage(ctx context.Context, claims access.Claims, productID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, product.AuthorID) {
		return nil, ErrForbidden
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, "products/"+productID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	image := &models.Image{
		EntityID: productID,
		ImageURL: imageURL,
	}

	err = s.imageRepo.Create(ctx, image)
	if err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	return image, nil
}

func (s *productService) DeleteImage(ctx context.Context, claims access.Claims, productID, imageID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, product.AuthorID) {
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
