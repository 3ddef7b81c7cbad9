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

func runDocumentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	sessionID := types.SessionID("session-1")

	t.Run("Create and ListBySession round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := &model.Document{
			SessionID: sessionID,
			Name:      "נסח טאבו",
			Type:      types.DocumentTypeTabuExtract,
			URL:       "gs://mekorot-uploads/tabu.pdf",
		}

		created, err := repo.Document().Create(ctx, doc)
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")

		docs, err := repo.Document().ListBySession(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(1)
		gt.Value(t, docs[0].Name).Equal("נסח טאבו")
		gt.Value(t, docs[0].Type).Equal(types.DocumentTypeTabuExtract)
	})

	t.Run("Update replaces preview URL and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Document().Create(ctx, &model.Document{
			SessionID: sessionID,
			Name:      "היתר בנייה",
			Type:      types.DocumentTypeBuildingPermit,
			URL:       "gs://mekorot-uploads/permit.pdf",
		})
		gt.NoError(t, err).Required()

		created.PreviewURL = "https://files.example.com/permit-preview.png"
		updated, err := repo.Document().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.PreviewURL).Equal("https://files.example.com/permit-preview.png")
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
	})

	t.Run("Delete removes document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Document().Create(ctx, &model.Document{
			SessionID: sessionID,
			Name:      "x",
			Type:      types.DocumentTypeOther,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Document().Delete(ctx, created.ID))

		_, err = repo.Document().Get(ctx, created.ID)
		gt.Error(t, err)
	})
}

func TestMemoryDocumentRepository(t *testing.T) {
	runDocumentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreDocumentRepository(t *testing.T) {
	runDocumentRepositoryTest(t, newFirestoreRepository)
}
