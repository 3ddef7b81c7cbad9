package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrDocumentNotFound = errors.New("document not found")

	// Input errors
	ErrEmptyValue   = errors.New("value is required")
	ErrEmptyAddress = errors.New("address is required")

	// Service availability errors
	ErrDraftUnavailable = errors.New("draft service is not configured")
)

// Context keys for error values
const (
	SessionIDKey = "session_id"
	RecordIDKey  = "record_id"
	FieldPathKey = "field_path"
)
