package service

import (
	"context"

	"artculture/internal/access"
	"artculture/internal/repository"
)

// LikeStatus - текущее состояние лайка и производный счетчик
type LikeStatus struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

type LikeService interface {
	Toggle(ctx context.Context, claims access.Claims, entityType, targetID string) (*LikeStatus, error)
	Status(ctx context.Context, claims access.Claims, entityType, targetID string) (*LikeStatus, error)
	Count(ctx context.Context, entityType, targetID string) (int, error)
}

type likeService struct {
	likeRepo       repository.LikeRepository
	postRepo       repository.PostRepository
	productRepo    repository.ProductRepository
	exhibitionRepo repository.ExhibitionRepository
	userRepo       repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	productRepo repository.ProductRepository,
	exhibitionRepo repository.ExhibitionRepository,
	userRepo repository.UserRepository,
) LikeService {
	return &likeService{
		likeRepo:       likeRepo,
		postRepo:       postRepo,
		productRepo:    productRepo,
		exhibitionRepo: exhibitionRepo,
		userRepo:       userRepo,
	}
}

// checkTarget - цель лайка должна существовать до записи строки
func (s *likeService) checkTarget(ctx context.Context, entityType, targetID string) error {
	if _, ok := repository.LikeTargetColumn(entityType); !ok {
		return repository.ErrBadLikeTarget
	}

	var err error
	switch entityType {
	case "post":
		_, err = s.postRepo.GetByID(ctx, targetID)
	case "product":
		_, err = s.productRepo.GetByID(ctx, targetID)
	case "exhibition":
		_, err = s.exhibitionRepo.GetByID(ctx, targetID)
	default:
		_, err = s.userRepo.GetUserByID(ctx, targetID)
	}
	return err
}

func (s *likeService) Toggle(ctx context.Context, claims access.Claims, entityType, targetID string) (*LikeStatus, error) {
	if err := s.checkTarget(ctx, entityType, targetID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, claims.UserID, entityType, targetID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.Count(ctx, entityType, targetID)
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) Status(ctx context.Context, claims access.Claims, entityType, targetID string) (*LikeStatus, error) {
	if _, ok := repository.LikeTargetColumn(entityType); !ok {
		return nil, repository.ErrBadLikeTarget
	}

	liked, err := s.likeRepo.Exists(ctx, claims.UserID, entityType, targetID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.Count(ctx, entityType, targetID)
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) Count(ctx context.Context, entityType, targetID string) (int, error) {
	if _, ok := repository.LikeTargetColumn(entityType); !ok {
		return 0, repository.ErrBadLikeTarget
	}
	return s.likeRepo.Count(ctx, entityType, targetID)
}
