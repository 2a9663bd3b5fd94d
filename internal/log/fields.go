package log

// Common field names for structured logging
const (
	FieldComponent        = "component"
	FieldRequestID        = "request_id"
	FieldClientIP         = "client_ip"
	FieldMethod           = "method"
	FieldPath             = "path"
	FieldStatusCode       = "status_code"
	FieldDuration         = "duration_ms"
	FieldUserAgent        = "user_agent"
	FieldError            = "error"
	FieldAccountID        = "account_id"
	FieldWindowStart      = "window_start"
	FieldWindowEnd        = "window_end"
	FieldPage             = "page"
	FieldTransactionCount = "transaction_count"
	FieldHasMore          = "has_more"
	FieldCategory         = "category"
	FieldCacheKey         = "cache_key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentUpbank  = "upbank"
	ComponentBudget  = "budget"
	ComponentCache   = "cache"
	ComponentService = "service"
)
