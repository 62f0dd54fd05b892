package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSuccess   = "success"
	FieldDuration  = "duration_ms"

	FieldMonth      = "month"
	FieldUser       = "user"
	FieldEndpoint   = "endpoint"
	FieldDate       = "date"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldStatusCode = "status_code"
	FieldGeneration = "generation"
	FieldView       = "view"
	FieldCacheHit   = "cache_hit"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentGateway  = "gateway"
	ComponentSettings = "settings"
	ComponentCache    = "cache"
	ComponentUI       = "ui"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpSave     = "save"
	OpLoad     = "load"
	OpStore    = "store"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
