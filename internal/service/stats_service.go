package service

import (
	"context"

	"artculture/internal/access"
	"artculture/internal/repository"
)

type StatsService interface {
	EntityCounts(ctx context.Context, claims access.Claims) (map[string]int, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) EntityCounts(ctx context.Context, claims access.Claims) (map[string]int, error) {
	if !access.CanModerate(claims) {
		return nil, ErrForbidden
	}
	return s.statsRepo.CountEntities(ctx)
}
