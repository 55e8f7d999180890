package steam

import (
	"context"

	"github.com/weiawesome/workshop-explorer/internal/domain"
)

// API is the subset of the Steam Web API used by the workshop service.
// Every method takes the Web API key explicitly so callers decide where
// the credential comes from.
type API interface {
	QueryFiles(ctx context.Context, key string, params QueryFilesParams) (*QueryFilesResult, error)
	GetDetails(ctx context.Context, key string, ids []string) ([]domain.ItemDetail, error)
	GetPlayerSummaries(ctx context.Context, key string, steamIDs []string) ([]domain.UserSummary, error)
}

// PageFetcher downloads public workshop item pages from the community site.
type PageFetcher interface {
	FetchItemPage(ctx context.Context, itemID string) (string, error)
}

// QueryFilesParams are the variable parts of a QueryFiles call.
type QueryFilesParams struct {
	SearchText string
	Page       int
	NumPerPage int
	AppID      string
}

// QueryFilesResult is one page of search results.
type QueryFilesResult struct {
	Total int
	Items []domain.ItemDetail
}
