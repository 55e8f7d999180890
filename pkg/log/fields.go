package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Service
	FieldService = "service"

	// Upstream (Steam Web API and community site)
	FieldUpstreamCall   = "upstream_call"
	FieldUpstreamStatus = "upstream_status"
	FieldItemID         = "item_id"
	FieldItemCount      = "item_count"

	// Search
	FieldQuery      = "query"
	FieldPage       = "page"
	FieldBannedMode = "banned_mode"
)
