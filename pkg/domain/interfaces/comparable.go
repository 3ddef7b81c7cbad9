package interfaces

import (
	"context"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// ComparableRepository defines the interface for Comparable data persistence
type ComparableRepository interface {
	// Create creates a new comparable sale
	Create(ctx context.Context, comparable *model.Comparable) (*model.Comparable, error)

	// ListBySession retrieves all comparables of a session
	ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.Comparable, error)

	// Delete deletes a comparable by ID
	Delete(ctx context.Context, id types.ComparableID) error
}
