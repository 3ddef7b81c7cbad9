package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/repository/memory"
)

func runComparableRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	sessionID := types.SessionID("session-1")

	t.Run("Create assigns ID and lists by session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, c := range []*model.Comparable{
			{SessionID: sessionID, Address: "הרצל 10, תל אביב", Price: 2_500_000, AreaSqm: 80},
			{SessionID: sessionID, Address: "הרצל 12, תל אביב", Price: 2_700_000, AreaSqm: 85},
			{SessionID: "session-2", Address: "אחר", Price: 1_000_000, AreaSqm: 50},
		} {
			created, err := repo.Comparable().Create(ctx, c)
			gt.NoError(t, err).Required()
			gt.String(t, string(created.ID)).NotEqual("")
		}

		comps, err := repo.Comparable().ListBySession(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Array(t, comps).Length(2)
		for _, c := range comps {
			gt.Value(t, c.SessionID).Equal(sessionID)
		}
	})

	t.Run("Delete removes only the target", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Comparable().Create(ctx, &model.Comparable{
			SessionID: sessionID, Address: "a", Price: 100, AreaSqm: 10,
		})
		gt.NoError(t, err).Required()
		second, err := repo.Comparable().Create(ctx, &model.Comparable{
			SessionID: sessionID, Address: "b", Price: 200, AreaSqm: 20,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Comparable().Delete(ctx, first.ID))

		comps, err := repo.Comparable().ListBySession(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Array(t, comps).Length(1)
		gt.Value(t, comps[0].ID).Equal(second.ID)
	})
}

func TestMemoryComparableRepository(t *testing.T) {
	runComparableRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreComparableRepository(t *testing.T) {
	runComparableRepositoryTest(t, newFirestoreRepository)
}
