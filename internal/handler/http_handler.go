package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/weiawesome/workshop-explorer/internal/domain"
	"github.com/weiawesome/workshop-explorer/internal/service"
	"github.com/weiawesome/workshop-explorer/pkg/log"
	"github.com/weiawesome/workshop-explorer/pkg/response"
)

// NetlifyPrefix is where the original front-end expects the functions.
const NetlifyPrefix = "/.netlify/functions"

// Handler handles HTTP requests for the workshop service.
type Handler struct {
	workshopService service.WorkshopService
	now             func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(workshopService service.WorkshopService) *Handler {
	return &Handler{
		workshopService: workshopService,
		now:             time.Now,
	}
}

// RegisterRoutes registers all routes, both at the root and under the
// Netlify functions prefix. Pre-flight requests never reach these; the
// CORS middleware answers them.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	for _, prefix := range []string{"", NetlifyPrefix} {
		api := r.Group(prefix)
		{
			api.POST("/search", h.Search)
			api.POST("/workshop", h.Workshop)
			api.GET("/status", h.Status)
		}
	}
	r.GET("/health", h.Health)
	r.NoRoute(h.NotFound)
}

// Search handles the enriched workshop search.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.workshopService.Search(ctx, query)
	if err != nil {
		l.Error().Err(err).Str(log.FieldQuery, query.Text).Int(log.FieldPage, query.Page).Msg("search failed")
		h.fail(c, err)
		return
	}

	response.Success(c, result)
}

// Workshop handles the plain single-page search without enrichment.
func (h *Handler) Workshop(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.workshopService.Browse(ctx, query)
	if err != nil {
		l.Error().Err(err).Str(log.FieldQuery, query.Text).Msg("workshop query failed")
		h.fail(c, err)
		return
	}

	response.Success(c, result)
}

// Status reports whether the service is up and has a credential.
func (h *Handler) Status(c *gin.Context) {
	response.JSON(c, gin.H{
		"message":   "API is working",
		"time":      h.now().UTC().Format(time.RFC3339),
		"hasApiKey": h.workshopService.HasCredential(),
	})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	response.JSON(c, gin.H{"status": "ok"})
}

// NotFound answers unknown routes in the JSON error shape.
func (h *Handler) NotFound(c *gin.Context) {
	response.NotFound(c, "Not found")
}

// bindQuery parses the JSON body. An empty body means an empty query;
// anything after the first JSON value makes the body malformed.
func (h *Handler) bindQuery(c *gin.Context) (domain.SearchQuery, bool) {
	var req domain.SearchRequest
	if err := bindStrictJSON(c, &req); err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("invalid request body")
		response.BadRequest(c, domain.ErrMalformedRequest.Error())
		return domain.SearchQuery{}, false
	}
	return req.ToQuery(), true
}

func bindStrictJSON(c *gin.Context, obj interface{}) error {
	data, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return errors.New("body is not a single JSON value")
	}
	return binding.JSON.BindBody(data, obj)
}

// fail maps service errors to responses. Configuration and upstream
// failures are both reported as 500 with the error message.
func (h *Handler) fail(c *gin.Context, err error) {
	response.InternalError(c, err.Error())
}
