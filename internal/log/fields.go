package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "id"
	FieldCategory      = "category"
	FieldPeriod        = "period"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldCount         = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentSummary = "summary"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpUpsert    = "upsert"
	OpList      = "list"
	OpSummarize = "summarize"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
