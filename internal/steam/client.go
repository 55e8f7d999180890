package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weiawesome/workshop-explorer/internal/domain"
	"github.com/weiawesome/workshop-explorer/pkg/log"
)

// Upstream call names, used in errors and logs.
const (
	CallSearch  = "Search"
	CallDetails = "Details"
	CallUser    = "User"
	CallPage    = "Page"
)

const (
	defaultAPIBaseURL       = "https://api.steampowered.com"
	defaultCommunityBaseURL = "https://steamcommunity.com"
	defaultTimeout          = 10 * time.Second

	// Item pages are a few hundred KB; anything past this is not a page we can use.
	maxPageBytes = 8 << 20
)

// Config configures a Client.
type Config struct {
	APIBaseURL       string
	CommunityBaseURL string
	Timeout          time.Duration
	UserAgent        string

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client talks to the Steam Web API and the Steam community site.
type Client struct {
	apiBaseURL       string
	communityBaseURL string
	userAgent        string
	httpClient       *http.Client
}

var (
	_ API         = (*Client)(nil)
	_ PageFetcher = (*Client)(nil)
)

// NewClient creates a new Steam client.
func NewClient(cfg Config) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.CommunityBaseURL == "" {
		cfg.CommunityBaseURL = defaultCommunityBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		apiBaseURL:       strings.TrimRight(cfg.APIBaseURL, "/"),
		communityBaseURL: strings.TrimRight(cfg.CommunityBaseURL, "/"),
		userAgent:        cfg.UserAgent,
		httpClient:       httpClient,
	}
}

// QueryFiles runs a workshop text search.
func (c *Client) QueryFiles(ctx context.Context, key string, params QueryFilesParams) (*QueryFilesResult, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("search_text", params.SearchText)
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("numperpage", strconv.Itoa(params.NumPerPage))
	q.Set("appid", params.AppID)
	q.Set("return_metadata", "1")
	q.Set("return_tags", "1")
	q.Set("return_details", "1")
	q.Set("return_children", "0")
	q.Set("return_short_description", "1")
	q.Set("return_vote_data", "1")
	q.Set("return_previews", "1")
	q.Set("return_change_notes", "1")
	q.Set("format", "json")

	endpoint := c.apiBaseURL + "/IPublishedFileService/QueryFiles/v1/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Call: CallSearch, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	var body struct {
		Response struct {
			Total                domain.Number       `json:"total"`
			PublishedFileDetails []domain.ItemDetail `json:"publishedfiledetails"`
		} `json:"response"`
	}
	if err := c.doJSON(req, CallSearch, &body); err != nil {
		return nil, err
	}

	return &QueryFilesResult{
		Total: body.Response.Total.Int(),
		Items: body.Response.PublishedFileDetails,
	}, nil
}

// detailsEndpoint is one step of the details fallback strategy.
type detailsEndpoint struct {
	tag  string
	path string
}

// detailsStrategy is tried in order; the first endpoint that answers wins.
var detailsStrategy = []detailsEndpoint{
	{tag: "primary", path: "/IPublishedFileService/GetDetails/v1/"},
	{tag: "fallback", path: "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"},
}

// GetDetails fetches full records for ids. The primary endpoint is tried
// first; on any failure the legacy endpoint is tried once. An error is
// returned only if both fail.
func (c *Client) GetDetails(ctx context.Context, key string, ids []string) ([]domain.ItemDetail, error) {
	l := log.Ctx(ctx)
	form := detailsForm(key, ids)

	var (
		errs    []error
		lastErr *domain.UpstreamError
	)
	for _, ep := range detailsStrategy {
		items, err := c.postDetails(ctx, ep, form)
		if err == nil {
			return items, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", ep.tag, err))
		if !errors.As(err, &lastErr) {
			lastErr = &domain.UpstreamError{Call: CallDetails, Err: err}
		}
		l.Warn().Err(err).
			Str(log.FieldUpstreamCall, CallDetails).
			Str("endpoint", ep.tag).
			Msg("details endpoint failed")
	}

	return nil, &domain.UpstreamError{
		Call:       CallDetails,
		StatusCode: lastErr.StatusCode,
		Err:        errors.Join(errs...),
	}
}

func detailsForm(key string, ids []string) url.Values {
	form := url.Values{}
	form.Set("key", key)
	form.Set("itemcount", strconv.Itoa(len(ids)))
	for i, id := range ids {
		form.Set(fmt.Sprintf("publishedfileids[%d]", i), id)
	}

	form.Set("includevotes", "1")
	form.Set("includetags", "1")
	form.Set("includemetadata", "1")
	form.Set("includeadditionalpreviews", "1")
	form.Set("includechildren", "0")

	form.Set("return_vote_data", "1")
	form.Set("return_reactions", "1")
	form.Set("return_playtime_stats", "1")
	form.Set("return_change_notes", "1")
	form.Set("strip_description_bbcode", "0")
	form.Set("return_children", "0")
	form.Set("return_short_description", "1")
	form.Set("return_details", "1")
	form.Set("return_metadata", "1")
	form.Set("return_kv_tags", "1")
	form.Set("return_tags", "1")
	form.Set("return_previews", "1")
	return form
}

func (c *Client) postDetails(ctx context.Context, ep detailsEndpoint, form url.Values) ([]domain.ItemDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+ep.path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.UpstreamError{Call: CallDetails, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		Response struct {
			PublishedFileDetails []domain.ItemDetail `json:"publishedfiledetails"`
		} `json:"response"`
	}
	if err := c.doJSON(req, CallDetails, &body); err != nil {
		return nil, err
	}

	return body.Response.PublishedFileDetails, nil
}

// GetPlayerSummaries looks up all steamIDs in one call.
func (c *Client) GetPlayerSummaries(ctx context.Context, key string, steamIDs []string) ([]domain.UserSummary, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("steamids", strings.Join(steamIDs, ","))

	endpoint := c.apiBaseURL + "/ISteamUser/GetPlayerSummaries/v2/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Call: CallUser, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	var body struct {
		Response struct {
			Players []domain.UserSummary `json:"players"`
		} `json:"response"`
	}
	if err := c.doJSON(req, CallUser, &body); err != nil {
		return nil, err
	}

	return body.Response.Players, nil
}

// FetchItemPage downloads the public details page of a workshop item.
func (c *Client) FetchItemPage(ctx context.Context, itemID string) (string, error) {
	endpoint := c.communityBaseURL + "/sharedfiles/filedetails/?id=" + url.QueryEscape(itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	setBrowserHeaders(req, c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Call: CallPage, Err: err}
	}
	defer resp.Body.Close()

	logCall(ctx, CallPage, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.UpstreamError{Call: CallPage, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &domain.UpstreamError{Call: CallPage, Err: fmt.Errorf("failed to read page: %w", err)}
	}

	return string(data), nil
}

func setBrowserHeaders(req *http.Request, userAgent string) {
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
}

// doJSON executes req and decodes a 2xx JSON body into out. Any failure is
// returned as *domain.UpstreamError tagged with call.
func (c *Client) doJSON(req *http.Request, call string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Call: call, Err: err}
	}
	defer resp.Body.Close()

	logCall(req.Context(), call, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.UpstreamError{Call: call, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Call: call, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

func logCall(ctx context.Context, call string, status int) {
	l := log.Ctx(ctx)
	l.Debug().
		Str(log.FieldUpstreamCall, call).
		Int(log.FieldUpstreamStatus, status).
		Msg("upstream call completed")
}
