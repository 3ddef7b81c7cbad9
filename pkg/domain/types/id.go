package types

import "github.com/google/uuid"

// SessionID identifies one appraisal session (one wizard run)
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of the session ID
func (s SessionID) String() string {
	return string(s)
}

// RecordID identifies a single provenance record
type RecordID string

// NewRecordID generates a new UUID v4 RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// String returns the string representation of the record ID
func (r RecordID) String() string {
	return string(r)
}

// DocumentID identifies an uploaded source document
type DocumentID string

// NewDocumentID generates a new UUID v4 DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

// String returns the string representation of the document ID
func (d DocumentID) String() string {
	return string(d)
}

// ComparableID identifies a comparable sale transaction
type ComparableID string

// NewComparableID generates a new UUID v4 ComparableID
func NewComparableID() ComparableID {
	return ComparableID(uuid.New().String())
}

// String returns the string representation of the comparable ID
func (c ComparableID) String() string {
	return string(c)
}
