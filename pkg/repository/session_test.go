package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/repository/firestore"
	"github.com/shamay-ai/mekorot/pkg/repository/memory"
)

func runSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns UUID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		session := &model.Session{
			PropertyAddress: "הרצל 12, תל אביב",
			ClientName:      "משה כהן",
		}

		created, err := repo.Session().Create(ctx, session)
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.PropertyAddress).Equal(session.PropertyAddress)
		gt.Value(t, created.Status).Equal(types.SessionStatusDraft)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Get returns stored session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx, &model.Session{
			PropertyAddress: "ביאליק 3, רמת גן",
			Status:          types.SessionStatusReview,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Session().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.PropertyAddress).Equal("ביאליק 3, רמת גן")
		gt.Value(t, got.Status).Equal(types.SessionStatusReview)
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Session().Get(ctx, types.SessionID("no-such-session"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("UpdateExtractedData replaces the snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx, &model.Session{
			PropertyAddress: "אלנבי 99, תל אביב",
			ExtractedData:   model.ExtractedData{"gush": "6638"},
		})
		gt.NoError(t, err).Required()

		newData := model.ExtractedData{
			"gush": "6638",
			"land_registry": map[string]any{
				"helka": "42",
			},
		}
		gt.NoError(t, repo.Session().UpdateExtractedData(ctx, created.ID, newData)).Required()

		got, err := repo.Session().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ExtractedData["gush"]).Equal(any("6638"))
		nested, ok := got.ExtractedData["land_registry"].(map[string]any)
		gt.Bool(t, ok).True()
		gt.Value(t, nested["helka"]).Equal(any("42"))
	})

	t.Run("stored data is isolated from caller mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		data := model.ExtractedData{"gush": "6638"}
		created, err := repo.Session().Create(ctx, &model.Session{
			PropertyAddress: "סוקולוב 5, חולון",
			ExtractedData:   data,
		})
		gt.NoError(t, err).Required()

		data["gush"] = "mutated"

		got, err := repo.Session().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ExtractedData["gush"]).Equal(any("6638"))
	})

	t.Run("Delete removes session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx, &model.Session{PropertyAddress: "x"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Session().Delete(ctx, created.ID))

		_, err = repo.Session().Get(ctx, created.ID)
		gt.Error(t, err)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	runSessionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreSessionRepository(t *testing.T) {
	runSessionRepositoryTest(t, newFirestoreRepository)
}
