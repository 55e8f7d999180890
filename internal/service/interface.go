package service

import (
	"context"

	"github.com/weiawesome/workshop-explorer/internal/domain"
)

// WorkshopService defines the interface for workshop search business logic.
type WorkshopService interface {
	// Search returns one page of enriched items.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)
	// Browse returns one page of raw search results without enrichment.
	Browse(ctx context.Context, query domain.SearchQuery) (*domain.BrowseResult, error)
	// HasCredential reports whether a Steam Web API key is configured.
	HasCredential() bool
}
