package ports

import (
	"context"

	"github.com/what2play/api/internal/core/domain"
)

// CatalogClient is the read-only lookup into the external game catalog.
// Implementations must return domain.ErrCatalogUnavailable when the
// upstream call fails; there are no partial results.
type CatalogClient interface {
	Search(ctx context.Context, query string, limit int) ([]domain.CatalogGame, error)
	Random(ctx context.Context, limit int) ([]domain.CatalogGame, error)
}
