package test

import (
	"context"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, resetToken, newPassword string) error {
	args := m.Called(ctx, resetToken, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) ClaimsFromToken(tokenString string) (access.Claims, error) {
	args := m.Called(tokenString)
	return args.Get(0).(access.Claims), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, claims access.Claims, req repository.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, claims, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, page pagination.Page, role string) ([]models.User, error) {
	args := m.Called(ctx, page, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) ListByRole(ctx context.Context, role, letter string) ([]models.User, error) {
	args := m.Called(ctx, role, letter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) SearchByRole(ctx context.Context, role, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, role, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) TopLikedMuseums(ctx context.Context, limit int) ([]models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) ChangeRole(ctx context.Context, claims access.Claims, targetUserID, newRole string) (*models.User, error) {
	args := m.Called(ctx, claims, targetUserID, newRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, claims access.Claims, targetUserID string) error {
	args := m.Called(ctx, claims, targetUserID)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, claims access.Claims, req repository.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, claims, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListApproved(ctx context.Context, page pagination.Page, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, page, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListAdmin(ctx context.Context, claims access.Claims, page pagination.Page, status, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, claims, page, status, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListPending(ctx context.Context, claims access.Claims) ([]models.Post, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListByAuthorRole(ctx context.Context, role string) ([]models.Post, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) TopLiked(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, claims access.Claims, req repository.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, claims, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, claims access.Claims, postID string) error {
	args := m.Called(ctx, claims, postID)
	return args.Error(0)
}

func (m *MockPostService) Moderate(ctx context.Context, claims access.Claims, postID, status string) (*models.Post, error) {
	args := m.Called(ctx, claims, postID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) AddImage(ctx context.Context, claims access.Claims, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	args := m.Called(ctx, claims, postID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, claims access.Claims, postID, imageID string) error {
	args := m.Called(ctx, claims, postID, imageID)
	return args.Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Toggle(ctx context.Context, claims access.Claims, entityType, targetID string) (*service.LikeStatus, error) {
	args := m.Called(ctx, claims, entityType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeStatus), args.Error(1)
}

func (m *MockLikeService) Status(ctx context.Context, claims access.Claims, entityType, targetID string) (*service.LikeStatus, error) {
	args := m.Called(ctx, claims, entityType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LikeStatus), args.Error(1)
}

func (m *MockLikeService) Count(ctx context.Context, entityType, targetID string) (int, error) {
	args := m.Called(ctx, entityType, targetID)
	return args.Int(0), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) EntityCounts(ctx context.Context, claims access.Claims) (map[string]int, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
