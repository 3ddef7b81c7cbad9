package interfaces

import (
	"context"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// DocumentRepository defines the interface for Document data persistence
type DocumentRepository interface {
	// Create creates a new document descriptor
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Get retrieves a document by ID
	Get(ctx context.Context, id types.DocumentID) (*model.Document, error)

	// ListBySession retrieves all documents of a session
	ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.Document, error)

	// Update updates an existing document descriptor
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete deletes a document by ID
	Delete(ctx context.Context, id types.DocumentID) error
}
