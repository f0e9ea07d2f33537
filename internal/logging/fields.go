package logging

// Standardized attribute keys shared across components.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	FieldSourceID  = "source_id"
	FieldTargetID  = "target_id"
	FieldSessionID = "session_id"
)
