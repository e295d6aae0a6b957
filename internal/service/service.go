package service

import (
	"errors"

	"artculture/internal/config"
	"artculture/internal/geo"
	"artculture/internal/mailer"
	"artculture/internal/repository"
	"artculture/internal/storage"
)

// Ошибки авторизации уровня бизнес-логики
var (
	ErrForbidden      = errors.New("доступ запрещен")
	ErrSelfRoleChange = errors.New("админ не может понизить собственную роль")
	ErrSelfDelete     = errors.New("нельзя удалить собственный аккаунт")
	ErrBadRole        = errors.New("неизвестная роль")
)

type Service struct {
	Auth       AuthService
	User       UserService
	Post       PostService
	Product    ProductService
	Exhibition ExhibitionService
	Like       LikeService
	ArtTerm    ArtTermService
	Stats      StatsService
	Geo        geo.Client
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, cfg, mail),
		User:       NewUserService(rep.User, cfg),
		Post:       NewPostService(rep.Post, rep.PostImages, storage),
		Product:    NewProductService(rep.Product, rep.ProductImages, storage),
		Exhibition: NewExhibitionService(rep.Exhibition, rep.ExhibitionImages, storage),
		Like:       NewLikeService(rep.Like, rep.Post, rep.Product, rep.Exhibition, rep.User),
		ArtTerm:    NewArtTermService(rep.ArtTerm),
		Stats:      NewStatsService(rep.Stats),
		Geo:        geo.NewClient(cfg),
	}
}
