package changelog

import (
	"context"

	"github.com/weiawesome/workshop-explorer/internal/steam"
	"github.com/weiawesome/workshop-explorer/pkg/log"
)

// Fetcher downloads item pages and extracts their change notes.
type Fetcher struct {
	pages steam.PageFetcher
}

var _ NotesFetcher = (*Fetcher)(nil)

// NewFetcher creates a new change notes fetcher.
func NewFetcher(pages steam.PageFetcher) *Fetcher {
	return &Fetcher{pages: pages}
}

// FetchChangeNotes never fails; network and parse problems yield ok=false.
func (f *Fetcher) FetchChangeNotes(ctx context.Context, itemID string) (string, bool) {
	page, err := f.pages.FetchItemPage(ctx, itemID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldItemID, itemID).Msg("failed to fetch item page")
		return "", false
	}

	notes, ok := Extract(page)
	if !ok {
		l := log.Ctx(ctx)
		l.Debug().Str(log.FieldItemID, itemID).Msg("no change notes on item page")
	}
	return notes, ok
}
