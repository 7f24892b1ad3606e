package contracts

import (
	"context"

	"zahara-service/internal/app/models"
)

type ProviderRepository interface {
	FindByID(ctx context.Context, providerID string) (*models.Provider, error)
}
