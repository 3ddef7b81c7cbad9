package model

import (
	"time"

	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// Session is one run of the appraisal wizard: the property being valued,
// its extracted-data snapshot, and lifecycle status
type Session struct {
	ID              types.SessionID
	PropertyAddress string
	ClientName      string
	Status          types.SessionStatus
	ExtractedData   ExtractedData
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
