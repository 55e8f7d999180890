package domain

import "strings"

// SearchRequest is the JSON body of POST /search and POST /workshop.
// All fields are optional; page accepts a number or a numeric string.
type SearchRequest struct {
	Query string `json:"query"`
	Page  Number `json:"page"`
	AppID string `json:"appId"`
}

// ToQuery converts the request body into a search query. Pages below 1
// become 1.
func (r SearchRequest) ToQuery() SearchQuery {
	page := r.Page.Int()
	if page < 1 {
		page = 1
	}
	return SearchQuery{
		Text:  r.Query,
		Page:  page,
		AppID: strings.TrimSpace(r.AppID),
	}
}
