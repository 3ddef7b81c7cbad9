package interfaces

import (
	"context"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// SessionRepository defines the interface for Session data persistence
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *model.Session) (*model.Session, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, id types.SessionID) (*model.Session, error)

	// List retrieves all sessions
	List(ctx context.Context) ([]*model.Session, error)

	// Update updates an existing session
	Update(ctx context.Context, session *model.Session) (*model.Session, error)

	// UpdateExtractedData replaces the session's extracted-data snapshot
	UpdateExtractedData(ctx context.Context, id types.SessionID, data model.ExtractedData) error

	// Delete deletes a session by ID
	Delete(ctx context.Context, id types.SessionID) error
}
