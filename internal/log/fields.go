package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSeq        = "seq"
	FieldPeriod     = "period"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentAPI       = "api"
	ComponentState     = "state"
	ComponentSession   = "session"
	ComponentDashboard = "dashboard"
	ComponentCharts    = "charts"
	ComponentExport    = "export"
)
