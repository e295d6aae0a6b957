package service

import (
	"context"

	"artculture/internal/access"
	"artculture/internal/config"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, claims access.Claims, req repository.UpdateProfileRequest) (*models.User, error)
	ListUsers(ctx context.Context, page pagination.Page, role string) ([]models.User, error)
	ListByRole(ctx context.Context, role, letter string) ([]models.User, error)
	SearchByRole(ctx context.Context, role, query string, limit int) ([]models.User, error)
	TopLikedMuseums(ctx context.Context, limit int) ([]models.User, error)
	ChangeRole(ctx context.Context, claims access.Claims, targetUserID, newRole string) (*models.User, error)
	DeleteUser(ctx context.Context, claims access.Claims, targetUserID string) error
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, claims access.Claims, req repository.UpdateProfileRequest) (*models.User, error) {
	// профиль меняет сам владелец или админ
	if !access.CanModify(claims, req.UserID) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	user.Title = req.Title
	user.Bio = req.Bio
	user.Country = req.Country
	user.City = req.City
	user.Street = req.Street
	user.HouseNumber = req.HouseNumber
	user.Postcode = req.Postcode

	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page pagination.Page, role string) ([]models.User, error) {
	return s.userRepo.List(ctx, page, role)
}

func (s *userService) ListByRole(ctx context.Context, role, letter string) ([]models.User, error) {
	return s.userRepo.ListByRole(ctx, role, letter)
}

func (s *userService) SearchByRole(ctx context.Context, role, query string, limit int) ([]models.User, error) {
	return s.userRepo.SearchByRole(ctx, role, query, limit)
}

func (s *userService) TopLikedMuseums(ctx context.Context, limit int) ([]models.User, error) {
	return s.userRepo.TopLikedByRole(ctx, models.RoleMuseum, limit)
}

func (s *userService) ChangeRole(ctx context.Context, claims access.Claims, targetUserID, newRole string) (*models.User, error) {
	if !access.ValidRole(newRole) {
		return nil, ErrBadRole
	}
	if !access.CanChangeRole(claims, targetUserID, newRole) {
		return nil, ErrSelfRoleChange
	}

	err := s.userRepo.UpdateRole(ctx, targetUserID, newRole)
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetUserByID(ctx, targetUserID)
}

func (s *userService) DeleteUser(ctx context.Context, claims access.Claims, targetUserID string) error {
	if !access.CanDeleteUser(claims, targetUserID) {
		return ErrSelfDelete
	}

	return s.userRepo.DeleteUser(ctx, targetUserID)
}
