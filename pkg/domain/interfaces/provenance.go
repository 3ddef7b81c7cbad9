package interfaces

import (
	"context"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// ProvenanceRepository defines the interface for ProvenanceRecord persistence
type ProvenanceRepository interface {
	// Create creates a new provenance record
	Create(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error)

	// Get retrieves a provenance record by ID
	Get(ctx context.Context, id types.RecordID) (*model.ProvenanceRecord, error)

	// ListBySession retrieves all provenance records of a session in
	// insertion order (active and inactive)
	ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.ProvenanceRecord, error)

	// Update updates an existing provenance record
	Update(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error)

	// DeactivateFieldPath marks all active records of a session's field path
	// as inactive and returns the highest version number seen
	DeactivateFieldPath(ctx context.Context, sessionID types.SessionID, fieldPath string) (int, error)
}
