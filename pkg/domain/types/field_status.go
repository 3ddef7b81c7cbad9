package types

import "fmt"

// FieldStatus represents the citation status of a reconciled field
type FieldStatus string

const (
	// FieldStatusOK means all citations are automated and confident
	FieldStatusOK FieldStatus = "ok"
	// FieldStatusLowConf means at least one citation is below the confidence threshold
	FieldStatusLowConf FieldStatus = "low_conf"
	// FieldStatusManual means at least one citation was entered or verified by a human
	FieldStatusManual FieldStatus = "manual"
	// FieldStatusMissing means no active citation backs the field value
	FieldStatusMissing FieldStatus = "missing"
)

// AllFieldStatuses returns all valid field statuses
func AllFieldStatuses() []FieldStatus {
	return []FieldStatus{
		FieldStatusOK,
		FieldStatusLowConf,
		FieldStatusManual,
		FieldStatusMissing,
	}
}

// IsValid checks if the field status is valid
func (s FieldStatus) IsValid() bool {
	switch s {
	case FieldStatusOK,
		FieldStatusLowConf,
		FieldStatusManual,
		FieldStatusMissing:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field status
func (s FieldStatus) String() string {
	return string(s)
}

// ParseFieldStatus parses a string into a FieldStatus
func ParseFieldStatus(s string) (FieldStatus, error) {
	status := FieldStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid field status: %s", s)
	}
	return status, nil
}
