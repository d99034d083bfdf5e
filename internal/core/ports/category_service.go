package ports

import (
	"context"

	"github.com/encontro-app/encontro/internal/core/domain"
)

// CategoryService defines admin-facing category management plus the public
// listing used by event forms.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
