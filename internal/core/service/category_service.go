package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// CategoryService implements category management. Names are 3-20 characters;
// the slug is regenerated whenever the name changes.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &domain.Category{
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug.Make(name)

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateCategoryName(name string) error {
	if len(name) < 3 || len(name) > 20 {
		return fmt.Errorf("%w: name must be between 3 and 20 characters", domain.ErrValidation)
	}
	return nil
}
