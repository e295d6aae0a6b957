package handlers

import (
	"github.com/go-playground/validator/v10"

	"artculture/internal/config"
	"artculture/internal/repository"
	"artculture/internal/service"
)

type Handlers struct {
	AuthService       service.AuthService
	UserService       service.UserService
	PostService       service.PostService
	ProductService    service.ProductService
	ExhibitionService service.ExhibitionService
	LikeService       service.LikeService
	ArtTermService    service.ArtTermService
	StatsService      service.StatsService
	Services          *service.Service
	Repo              *repository.Repository
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:       services.Auth,
		UserService:       services.User,
		PostService:       services.Post,
		ProductService:    services.Product,
		ExhibitionService: services.Exhibition,
		LikeService:       services.Like,
		ArtTermService:    services.ArtTerm,
		StatsService:      services.Stats,
		Services:          services,
		Repo:              repo,
		Cfg:               cfg,
		Validate:          validator.New(),
	}
}
