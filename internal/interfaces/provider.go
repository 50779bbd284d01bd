package interfaces

import (
	"context"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// OrganizationProvider fetches and normalizes nonprofit data from the
// upstream tax-filing data source. Implementations hand off a fully
// materialized profile and filing list before the core runs; the core
// itself performs no I/O.
type OrganizationProvider interface {
	// GetOrganization fetches one organization by EIN. Returns
	// propublica.ErrNotFound (wrapped) when the provider has no record.
	GetOrganization(ctx context.Context, ein string) (models.Organization, []models.RawFiling, error)

	// SearchOrganizations runs a free-text search against the provider.
	SearchOrganizations(ctx context.Context, query string) ([]models.SearchResult, error)
}
