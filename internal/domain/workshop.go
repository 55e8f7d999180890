package domain

import (
	"encoding/json"
	"strings"
)

// BannedModsQuery switches a search into banned-item filter mode.
const BannedModsQuery = "SHOW BANNED MODS"

// SearchQuery is the input of one search or browse call.
type SearchQuery struct {
	Text  string
	Page  int
	AppID string
}

// BannedMode reports whether the query asks for banned items only.
func (q SearchQuery) BannedMode() bool {
	return strings.ToUpper(strings.TrimSpace(q.Text)) == BannedModsQuery
}

// CandidateRef is what the search step knows about an item before enrichment.
type CandidateRef struct {
	PublishedFileID string
	Banned          bool
	BanReason       string
}

// IsBanned reports whether the item carries a ban flag or a ban reason.
func (c CandidateRef) IsBanned() bool {
	return c.Banned || strings.TrimSpace(c.BanReason) != ""
}

// Tag is a workshop item tag.
type Tag struct {
	Tag         string `json:"tag"`
	DisplayName string `json:"display_name,omitempty"`
}

// ItemDetail is a workshop item record as returned by QueryFiles or the
// details endpoints. The typed fields are a read-only view of what the
// service needs; numeric fields accept numbers or numeric strings. A
// decoded record re-encodes to the upstream object unchanged.
type ItemDetail struct {
	PublishedFileID  string `json:"publishedfileid"`
	Result           Number `json:"result,omitempty"`
	Creator          string `json:"creator,omitempty"`
	CreatorAppID     Number `json:"creator_app_id,omitempty"`
	ConsumerAppID    Number `json:"consumer_app_id,omitempty"`
	Filename         string `json:"filename,omitempty"`
	FileSize         Number `json:"file_size,omitempty"`
	FileURL          string `json:"file_url,omitempty"`
	PreviewURL       string `json:"preview_url,omitempty"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	FileDescription  string `json:"file_description,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	TimeCreated      Number `json:"time_created,omitempty"`
	TimeUpdated      Number `json:"time_updated,omitempty"`
	Visibility       Number `json:"visibility,omitempty"`
	Banned           Flag   `json:"banned"`
	BanReason        string `json:"ban_reason,omitempty"`
	Tags             []Tag  `json:"tags,omitempty"`

	Subscriptions         Number `json:"subscriptions,omitempty"`
	Favorited             Number `json:"favorited,omitempty"`
	LifetimeSubscriptions Number `json:"lifetime_subscriptions,omitempty"`
	LifetimeFavorited     Number `json:"lifetime_favorited,omitempty"`
	Views                 Number `json:"views,omitempty"`

	VoteFields

	// raw holds every upstream field verbatim.
	raw map[string]json.RawMessage
}

// Candidate returns the search-step identity of the item.
func (d ItemDetail) Candidate() CandidateRef {
	return CandidateRef{
		PublishedFileID: d.PublishedFileID,
		Banned:          bool(d.Banned),
		BanReason:       d.BanReason,
	}
}

// VoteFields collects every vote-related shape the upstream has been seen
// to return. At most a few of them are populated for any one item.
type VoteFields struct {
	VoteData    *VoteData    `json:"vote_data,omitempty"`
	VoteSummary *VoteSummary `json:"vote_summary,omitempty"`

	VotesUp   Number `json:"votes_up,omitempty"`
	VotesDown Number `json:"votes_down,omitempty"`
	VoteUp    Number `json:"vote_up,omitempty"`
	VoteDown  Number `json:"vote_down,omitempty"`
	Upvotes   Number `json:"upvotes,omitempty"`
	Downvotes Number `json:"downvotes,omitempty"`

	Score                OptionalNumber `json:"score,omitzero"`
	VoteScore            OptionalNumber `json:"vote_score,omitzero"`
	PositiveVotesPercent OptionalNumber `json:"positive_votes_percent,omitzero"`

	LifetimeVotes Number `json:"lifetime_votes,omitempty"`
	TotalVotes    Number `json:"total_votes,omitempty"`
}

// VoteData is the nested vote_data object.
type VoteData struct {
	Score     OptionalNumber `json:"score,omitzero"`
	Votes     Number         `json:"votes,omitempty"`
	VotesUp   Number         `json:"votes_up,omitempty"`
	VotesDown Number         `json:"votes_down,omitempty"`
}

// VoteSummary is the nested vote_summary object.
type VoteSummary struct {
	Total Number `json:"total,omitempty"`
}

// UserSummary is the subset of a Steam player summary used for creators.
type UserSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	ProfileURL  string `json:"profileurl"`
}

// Rating is the normalized 0-5 star rating of an item.
// HasRating == !Unrated, Score is nil iff Unrated, Votes is 0 iff Unrated.
type Rating struct {
	Score     *float64 `json:"score"`
	Votes     int      `json:"votes"`
	HasRating bool     `json:"has_rating"`
	Unrated   bool     `json:"unrated"`
}

// UnratedRating returns the rating of an item without any vote signal.
func UnratedRating() Rating {
	return Rating{Score: nil, Votes: 0, HasRating: false, Unrated: true}
}

// UnknownCreator is the creator name used when no summary is available.
const UnknownCreator = "Unknown"

// EnrichedItem is an item detail plus creator, change notes and rating.
// It encodes as the upstream record with the enrichment fields added.
type EnrichedItem struct {
	ItemDetail
	CreatorName    string  `json:"creator_name"`
	CreatorProfile *string `json:"creator_profile"`
	ChangeNotes    *string `json:"change_notes,omitempty"`
	Rating         Rating  `json:"rating"`
}

// SearchResult is one page of enriched items.
type SearchResult struct {
	Items []EnrichedItem `json:"publishedfiledetails"`
	Total int            `json:"total"`
}

// BrowseResult is one page of raw search results without enrichment.
type BrowseResult struct {
	Items []ItemDetail `json:"publishedfiledetails"`
	Total int          `json:"total"`
}
