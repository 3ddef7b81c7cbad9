package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

type comparableRepository struct {
	mu          sync.RWMutex
	comparables map[types.ComparableID]*model.Comparable
}

func newComparableRepository() *comparableRepository {
	return &comparableRepository{
		comparables: make(map[types.ComparableID]*model.Comparable),
	}
}

func copyComparable(comparable *model.Comparable) *model.Comparable {
	copied := *comparable
	return &copied
}

func (r *comparableRepository) Create(ctx context.Context, comparable *model.Comparable) (*model.Comparable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyComparable(comparable)
	if created.ID == "" {
		created.ID = types.NewComparableID()
	}
	created.CreatedAt = time.Now().UTC()

	r.comparables[created.ID] = created
	return copyComparable(created), nil
}

func (r *comparableRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.Comparable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var comparables []*model.Comparable
	for _, comparable := range r.comparables {
		if comparable.SessionID == sessionID {
			comparables = append(comparables, copyComparable(comparable))
		}
	}
	sort.Slice(comparables, func(i, j int) bool {
		return comparables[i].CreatedAt.Before(comparables[j].CreatedAt)
	})

	return comparables, nil
}

func (r *comparableRepository) Delete(ctx context.Context, id types.ComparableID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comparables[id]; !exists {
		return goerr.Wrap(ErrNotFound, "comparable not found", goerr.V("id", id))
	}

	delete(r.comparables, id)
	return nil
}
