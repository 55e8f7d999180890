package changelog

import "context"

// NotesFetcher returns the change notes of a workshop item. ok is false
// when the notes could not be fetched or the page has none.
type NotesFetcher interface {
	FetchChangeNotes(ctx context.Context, itemID string) (notes string, ok bool)
}
