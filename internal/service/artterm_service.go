package service

import (
	"context"
	"unicode"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/repository"
)

const lastTermsCount = 15

type ArtTermService interface {
	CreateTerm(ctx context.Context, claims access.Claims, req repository.CreateArtTermRequest) (*models.ArtTerm, error)
	GetTerm(ctx context.Context, termID string) (*models.ArtTerm, error)
	ListByLang(ctx context.Context, lang string) ([]models.ArtTerm, error)
	LastTerms(ctx context.Context) ([]models.ArtTerm, error)
	ByLetter(ctx context.Context, letter string) ([]models.ArtTerm, error)
	UpdateTerm(ctx context.Context, claims access.Claims, term *models.ArtTerm) (*models.ArtTerm, error)
	DeleteTerm(ctx context.Context, claims access.Claims, termID string) error
}

type artTermService struct {
	termRepo repository.ArtTermRepository
}

func NewArtTermService(termRepo repository.ArtTermRepository) ArtTermService {
	return &artTermService{termRepo: termRepo}
}

func (s *artTermService) CreateTerm(ctx context.Context, claims access.Claims, req repository.CreateArtTermRequest) (*models.ArtTerm, error) {
	if !access.CanEditArtTerms(claims.Role) {
		return nil, ErrForbidden
	}

	term := &models.ArtTerm{
		TitleEn:       req.TitleEn,
		TitleUk:       req.TitleUk,
		DescriptionEn: req.DescriptionEn,
		DescriptionUk: req.DescriptionUk,
	}

	err := s.termRepo.Create(ctx, term)
	if err != nil {
		return nil, err
	}

	return term, nil
}

func (s *artTermService) GetTerm(ctx context.Context, termID string) (*models.ArtTerm, error) {
	return s.termRepo.GetByID(ctx, termID)
}

// ListByLang возвращает алфавитный указатель: первый термин на каждую букву
// выбранного языка. Полный список по букве отдает ByLetter.
func (s *artTermService) ListByLang(ctx context.Context, lang string) ([]models.ArtTerm, error) {
	terms, err := s.termRepo.List(ctx, lang)
	if err != nil {
		return nil, err
	}

	seen := make(map[rune]bool)
	index := make([]models.ArtTerm, 0, len(terms))
	for _, term := range terms {
		title := term.TitleEn
		if lang == "uk" {
			title = term.TitleUk
		}
		letters := []rune(title)
		if len(letters) == 0 {
			continue
		}
		first := unicode.ToUpper(letters[0])
		if seen[first] {
			continue
		}
		seen[first] = true
		index = append(index, term)
	}

	return index, nil
}

func (s *artTermService) LastTerms(ctx context.Context) ([]models.ArtTerm, error) {
	return s.termRepo.Last(ctx, lastTermsCount)
}

func (s *artTermService) ByLetter(ctx context.Context, letter string) ([]models.ArtTerm, error) {
	return s.termRepo.ByLetter(ctx, letter)
}

func (s *artTermService) UpdateTerm(ctx context.Context, claims access.Claims, term *models.ArtTerm) (*models.ArtTerm, error) {
	if !access.CanEditArtTerms(claims.Role) {
		return nil, ErrForbidden
	}

	existing, err := s.termRepo.GetByID(ctx, term.TermID)
	if err != nil {
		return nil, err
	}

	existing.TitleEn = term.TitleEn
	existing.TitleUk = term.TitleUk
	existing.DescriptionEn = term.DescriptionEn
	existing.DescriptionUk = term.DescriptionUk

	err = s.termRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *artTermService) DeleteTerm(ctx context.Context, claims access.Claims, termID string) error {
	if !access.CanEditArtTerms(claims.Role) {
		return ErrForbidden
	}
	return s.termRepo.Delete(ctx, termID)
}
