package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/storage"
)

type CreateExhibitionRequest struct {
	TitleEn       string    `json:"title_en" validate:"required"`
	TitleUk       string    `json:"title_uk"`
	DescriptionEn string    `json:"description_en"`
	DescriptionUk string    `json:"description_uk"`
	LocationEn    string    `json:"location_en"`
	LocationUk    string    `json:"location_uk"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required"`
	Time          string    `json:"time"`
	EndTime       string    `json:"endTime"`
	Address       string    `json:"address"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	ArtistIDs     []string  `json:"artistIds"`
	ProductIDs    []string  `json:"productIds"`
}

type UpdateExhibitionRequest struct {
	ExhibitionID  string    `json:"exhibitionId"`
	TitleEn       string    `json:"title_en"`
	TitleUk       string    `json:"title_uk"`
	DescriptionEn string    `json:"description_en"`
	DescriptionUk string    `json:"description_uk"`
	LocationEn    string    `json:"location_en"`
	LocationUk    string    `json:"location_uk"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Time          string    `json:"time"`
	EndTime       string    `json:"endTime"`
	Address       string    `json:"address"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	ArtistIDs     []string  `json:"artistIds"`
	ProductIDs    []string  `json:"productIds"`
}

type ExhibitionService interface {
	CreateExhibition(ctx context.Context, claims access.Claims, req CreateExhibitionRequest) (*models.Exhibition, error)
	GetExhibition(ctx context.Context, exhibitionID string) (*models.Exhibition, error)
	ListExhibitions(ctx context.Context, page pagination.Page) ([]models.Exhibition, error)
	ListByCreator(ctx context.Context, createdByID string) ([]models.Exhibition, error)
	UpdateExhibition(ctx context.Context, claims access.Claims, req UpdateExhibitionRequest) (*models.Exhibition, error)
	DeleteExhibition(ctx context.Context, claims access.Claims, exhibitionID string) error
	Products(ctx context.Context, exhibitionID string) ([]models.Product, error)
	TopLiked(ctx context.Context, limit int) ([]models.Exhibition, error)
	AddImage(ctx context.Context, claims access.Claims, exhibitionID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, claims access.Claims, exhibitionID, imageID string) error
}

type exhibitionService struct {
	exhibitionRepo repository.ExhibitionRepository
	imageRepo      repository.ImageRepository
	storage        storage.Storage
}

func NewExhibitionService(exhibitionRepo repository.ExhibitionRepository, imageRepo repository.ImageRepository, storage storage.Storage) ExhibitionService {
	return &exhibitionService{
		exhibitionRepo: exhibitionRepo,
		imageRepo:      imageRepo,
		storage:        storage,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func (s *exhibitionService) CreateExhibition(ctx context.Context, claims access.Claims, req CreateExhibitionRequest) (*models.Exhibition, error) {
	if !access.CanCreateExhibition(claims.Role) {
		return nil, ErrForbidden
	}

	exhibition := &models.Exhibition{
		CreatedByID:   claims.UserID,
		TitleEn:       req.TitleEn,
		TitleUk:       req.TitleUk,
		DescriptionEn: req.DescriptionEn,
		DescriptionUk: req.DescriptionUk,
		LocationEn:    req.LocationEn,
		LocationUk:    req.LocationUk,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Time:          req.Time,
		EndTime:       req.EndTime,
		Address:       req.Address,
		Latitude:      nullFloat(req.Latitude),
		Longitude:     nullFloat(req.Longitude),
		ArtistIDs:     req.ArtistIDs,
		ProductIDs:    req.ProductIDs,
	}

	err := s.exhibitionRepo.Create(ctx, exhibition)
	if err != nil {
		return nil, err
	}

	return exhibition, nil
}

func (s *exhibitionService) GetExhibition(ctx context.Context, exhibitionID string) (*models.Exhibition, error) {
	exhibition, err := s.exhibitionRepo.GetByID(ctx, exhibitionID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetByEntityID(ctx, exhibitionID)
	if err != nil {
		return nil, err
	}
	exhibition.Images = images

	return exhibition, nil
}

func (s *exhibitionService) ListExhibitions(ctx context.Context, page pagination.Page) ([]models.Exhibition, error) {
	return s.exhibitionRepo.List(ctx, page)
}

func (s *exhibitionService) ListByCreator(ctx context.Context, createdByID string) ([]models.Exhibition, error) {
	return s.exhibitionRepo.ListByCreator(ctx, createdByID)
}

func (s *exhibitionService) UpdateExhibition(ctx context.Context, claims access.Claims, req UpdateExhibitionRequest) (*models.Exhibition, error) {
	exhibition, err := s.exhibitionRepo.GetByID(ctx, req.ExhibitionID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, exhibition.CreatedByID) {
		return nil, ErrForbidden
	}

	exhibition.TitleEn = req.TitleEn
	exhibition.TitleUk = req.TitleUk
	exhibition.DescriptionEn = req.DescriptionEn
	exhibition.DescriptionUk = req.DescriptionUk
	exhibition.LocationEn = req.LocationEn
	exhibition.LocationUk = req.LocationUk
	exhibition.StartDate = req.StartDate
	exhibition.EndDate = req.EndDate
	exhibition.Time = req.Time
	exhibition.EndTime = req.EndTime
	exhibition.Address = req.Address
	exhibition.Latitude = nullFloat(req.Latitude)
	exhibition.Longitude = nullFloat(req.Longitude)
	exhibition.ArtistIDs = req.ArtistIDs
	exhibition.ProductIDs = req.ProductIDs

	err = s.exhibitionRepo.Update(ctx, exhibition)
	if err != nil {
		return nil, err
	}

	return exhibition, nil
}

func (s *exhibitionService) DeleteExhibition(ctx context.Context, claims access.Claims, exhibitionID string) error {
	exhibition, err := s.exhibitionRepo.GetByID(ctx, exhibitionID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, exhibition.CreatedByID) {
		return ErrForbidden
	}

	images, err := s.imageRepo.GetByEntityID(ctx, exhibitionID)
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

	return s.exhibitionRepo.Delete(ctx, exhibitionID)
}

func (s *exhibitionService) Products(ctx context.Context, exhibitionID string) ([]models.Product, error) {
	return s.exhibitionRepo.Products(ctx, exhibitionID)
}

func (s *exhibitionService) TopLiked(ctx context.Context, limit int) ([]models.Exhibition, error) {
	return s.exhibitionRepo.TopLiked(ctx, limit)
}

func (s *exhibitionService) AddImage(ctx context.Context, claims access.Claims, exhibitionID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	exhibition, err := s.exhibitionRepo.GetByID(ctx, exhibitionID)
	if err != nil {
		return nil, err
	}

	if !access.CanModify(claims, exhibition.CreatedByID) {
		return nil, ErrForbidden
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, "exhibitions/"+exhibitionID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	image := &models.Image{
		EntityID: exhibitionID,
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

func (s *exhibitionService) DeleteImage(ctx context.Context, claims access.Claims, exhibitionID, imageID string) error {
	exhibition, err := s.exhibitionRepo.GetByID(ctx, exhibitionID)
	if err != nil {
		return err
	}

	if !access.CanModify(claims, exhibition.CreatedByID) {
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
