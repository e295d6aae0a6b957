package app

import (
	"log"

	"artculture/internal/config"
	"artculture/internal/database"
	"artculture/internal/mailer"
	"artculture/internal/repository"
	"artculture/internal/service"
	"artculture/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	mail := mailer.NewMailer(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}
