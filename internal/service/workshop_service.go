package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/workshop-explorer/internal/changelog"
	"github.com/weiawesome/workshop-explorer/internal/domain"
	"github.com/weiawesome/workshop-explorer/internal/rating"
	"github.com/weiawesome/workshop-explorer/internal/steam"
	"github.com/weiawesome/workshop-explorer/pkg/log"
)

const (
	// PageSize is the number of items per result page.
	PageSize = 20
	// BannedScanSize is how many items are scanned for bans per upstream page.
	BannedScanSize = 100
	// BrowsePageSize is the page size of the un-enriched browse query.
	BrowsePageSize = 10

	// DefaultAppID is DayZ.
	DefaultAppID = "221100"
)

// Options configures the workshop service.
type Options struct {
	APIKey string
	AppID  string
}

type workshopServiceImpl struct {
	api    steam.API
	notes  changelog.NotesFetcher
	apiKey string
	appID  string
}

// NewWorkshopService creates a new workshop service.
func NewWorkshopService(api steam.API, notes changelog.NotesFetcher, opts Options) WorkshopService {
	appID := opts.AppID
	if appID == "" {
		appID = DefaultAppID
	}
	return &workshopServiceImpl{
		api:    api,
		notes:  notes,
		apiKey: strings.TrimSpace(opts.APIKey),
		appID:  appID,
	}
}

func (s *workshopServiceImpl) HasCredential() bool {
	return s.apiKey != ""
}

func (s *workshopServiceImpl) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	if !s.HasCredential() {
		return nil, domain.ErrAPIKeyNotConfigured
	}
	s.normalizeQuery(&query)

	banned := query.BannedMode()
	l := log.Ctx(ctx).With().
		Str(log.FieldQuery, query.Text).
		Int(log.FieldPage, query.Page).
		Bool(log.FieldBannedMode, banned).
		Logger()

	params := steam.QueryFilesParams{
		SearchText: query.Text,
		Page:       query.Page,
		NumPerPage: PageSize,
		AppID:      query.AppID,
	}
	if banned {
		params.SearchText = ""
		params.NumPerPage = BannedScanSize
	}

	found, err := s.api.QueryFiles(ctx, s.apiKey, params)
	if err != nil {
		return nil, asUpstream(steam.CallSearch, err)
	}

	candidates := make([]domain.CandidateRef, 0, len(found.Items))
	for _, item := range found.Items {
		candidates = append(candidates, item.Candidate())
	}
	total := found.Total

	if banned {
		candidates = paginate(filterBanned(candidates), query.Page, PageSize)
		total = len(candidates)
	}

	if len(candidates) == 0 {
		l.Debug().Msg("no candidates")
		return &domain.SearchResult{Items: []domain.EnrichedItem{}, Total: 0}, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.PublishedFileID)
	}

	details, err := s.api.GetDetails(ctx, s.apiKey, ids)
	if err != nil {
		return nil, asUpstream(steam.CallDetails, err)
	}

	users := s.lookupCreators(ctx, details)
	items := s.enrichAll(ctx, details, users)

	l.Debug().Int(log.FieldItemCount, len(items)).Int("total", total).Msg("search completed")

	return &domain.SearchResult{Items: items, Total: total}, nil
}

func (s *workshopServiceImpl) Browse(ctx context.Context, query domain.SearchQuery) (*domain.BrowseResult, error) {
	if !s.HasCredential() {
		return nil, domain.ErrAPIKeyNotConfigured
	}
	s.normalizeQuery(&query)

	found, err := s.api.QueryFiles(ctx, s.apiKey, steam.QueryFilesParams{
		SearchText: query.Text,
		Page:       query.Page,
		NumPerPage: BrowsePageSize,
		AppID:      query.AppID,
	})
	if err != nil {
		return nil, asUpstream(steam.CallSearch, err)
	}

	items := found.Items
	if items == nil {
		items = []domain.ItemDetail{}
	}
	return &domain.BrowseResult{Items: items, Total: found.Total}, nil
}

// lookupCreators resolves all distinct creators with one call. Failure
// is not fatal; every creator then resolves to Unknown.
func (s *workshopServiceImpl) lookupCreators(ctx context.Context, details []domain.ItemDetail) map[string]domain.UserSummary {
	seen := make(map[string]struct{}, len(details))
	ids := make([]string, 0, len(details))
	for _, d := range details {
		if d.Creator == "" {
			continue
		}
		if _, ok := seen[d.Creator]; ok {
			continue
		}
		seen[d.Creator] = struct{}{}
		ids = append(ids, d.Creator)
	}

	users := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return users
	}

	summaries, err := s.api.GetPlayerSummaries(ctx, s.apiKey, ids)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Int(log.FieldItemCount, len(ids)).Msg("creator lookup failed, using defaults")
		return users
	}

	for _, u := range summaries {
		users[u.SteamID] = u
	}
	return users
}

// enrichAll enriches every item concurrently and keeps the input order.
func (s *workshopServiceImpl) enrichAll(ctx context.Context, details []domain.ItemDetail, users map[string]domain.UserSummary) []domain.EnrichedItem {
	items := make([]domain.EnrichedItem, len(details))

	var g errgroup.Group
	for i, d := range details {
		g.Go(func() error {
			items[i] = s.enrich(ctx, d, users)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func (s *workshopServiceImpl) enrich(ctx context.Context, d domain.ItemDetail, users map[string]domain.UserSummary) domain.EnrichedItem {
	item := domain.EnrichedItem{
		ItemDetail:  d,
		CreatorName: domain.UnknownCreator,
		Rating:      rating.Normalize(d),
	}

	if u, ok := users[d.Creator]; ok {
		if u.PersonaName != "" {
			item.CreatorName = u.PersonaName
		}
		if u.ProfileURL != "" {
			profile := u.ProfileURL
			item.CreatorProfile = &profile
		}
	}

	if notes, ok := s.notes.FetchChangeNotes(ctx, d.PublishedFileID); ok {
		item.ChangeNotes = &notes
	}

	return item
}

func (s *workshopServiceImpl) normalizeQuery(q *domain.SearchQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.AppID == "" {
		q.AppID = s.appID
	}
}

func filterBanned(candidates []domain.CandidateRef) []domain.CandidateRef {
	out := make([]domain.CandidateRef, 0, len(candidates))
	for _, c := range candidates {
		if c.IsBanned() {
			out = append(out, c)
		}
	}
	return out
}

// paginate returns the page-th slice of size items, or nothing when the
// page is past the end.
func paginate(candidates []domain.CandidateRef, page, size int) []domain.CandidateRef {
	start := (page - 1) * size
	if start >= len(candidates) {
		return nil
	}
	end := start + size
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[start:end]
}

func asUpstream(call string, err error) error {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return err
	}
	return &domain.UpstreamError{Call: call, Err: err}
}
