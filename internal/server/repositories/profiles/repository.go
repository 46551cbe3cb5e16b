package profiles

import (
	"context"

	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	// Update writes the given columns of the row keyed by email.
	Update(ctx context.Context, email string, columns map[string]string) error
}
