package types

import "fmt"

// SessionStatus represents the lifecycle stage of an appraisal session
type SessionStatus string

const (
	SessionStatusDraft      SessionStatus = "DRAFT"
	SessionStatusExtracting SessionStatus = "EXTRACTING"
	SessionStatusReview     SessionStatus = "REVIEW"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// AllSessionStatuses returns all valid session statuses
func AllSessionStatuses() []SessionStatus {
	return []SessionStatus{
		SessionStatusDraft,
		SessionStatusExtracting,
		SessionStatusReview,
		SessionStatusCompleted,
	}
}

// IsValid checks if the session status is valid
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusDraft,
		SessionStatusExtracting,
		SessionStatusReview,
		SessionStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as SessionStatusDraft for
// sessions persisted before the status field existed.
func (s SessionStatus) Normalize() SessionStatus {
	if s == "" {
		return SessionStatusDraft
	}
	return s
}

// String returns the string representation of the session status
func (s SessionStatus) String() string {
	return string(s)
}

// ParseSessionStatus parses a string into a SessionStatus
func ParseSessionStatus(s string) (SessionStatus, error) {
	status := SessionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid session status: %s", s)
	}
	return status, nil
}
