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

func runProvenanceRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	sessionID := types.SessionID("session-1")

	newRecord := func(path string) *model.ProvenanceRecord {
		return &model.ProvenanceRecord{
			SessionID:        sessionID,
			FieldPath:        path,
			DocumentName:     "נסח טאבו",
			DocumentType:     types.DocumentTypeTabuExtract,
			PageNumber:       1,
			Confidence:       0.9,
			ExtractionMethod: "openai",
			IsActive:         true,
			VersionNumber:    1,
		}
	}

	t.Run("Create assigns UUID and preserves fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		record := newRecord("gush")
		record.BBox = &model.BBox{X: 10, Y: 20, Width: 30, Height: 40}

		created, err := repo.Provenance().Create(ctx, record)
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.FieldPath).Equal("gush")
		gt.Value(t, created.BBox).NotNil()
		gt.Value(t, created.BBox.Width).Equal(30.0)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("ListBySession preserves insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, path := range []string{"gush", "helka", "tat_helka"} {
			_, err := repo.Provenance().Create(ctx, newRecord(path))
			gt.NoError(t, err).Required()
		}

		records, err := repo.Provenance().ListBySession(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(3)
		gt.Value(t, records[0].FieldPath).Equal("gush")
		gt.Value(t, records[1].FieldPath).Equal("helka")
		gt.Value(t, records[2].FieldPath).Equal("tat_helka")
	})

	t.Run("ListBySession excludes other sessions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Provenance().Create(ctx, newRecord("gush"))
		gt.NoError(t, err).Required()

		other := newRecord("gush")
		other.SessionID = "session-2"
		_, err = repo.Provenance().Create(ctx, other)
		gt.NoError(t, err).Required()

		records, err := repo.Provenance().ListBySession(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Provenance().Get(ctx, types.RecordID("no-such-record"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("DeactivateFieldPath deactivates matching records and reports max version", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := newRecord("gush")
		first.VersionNumber = 1
		created1, err := repo.Provenance().Create(ctx, first)
		gt.NoError(t, err).Required()

		second := newRecord("gush")
		second.VersionNumber = 3
		created2, err := repo.Provenance().Create(ctx, second)
		gt.NoError(t, err).Required()

		unrelated := newRecord("helka")
		created3, err := repo.Provenance().Create(ctx, unrelated)
		gt.NoError(t, err).Required()

		maxVersion, err := repo.Provenance().DeactivateFieldPath(ctx, sessionID, "gush")
		gt.NoError(t, err).Required()
		gt.Value(t, maxVersion).Equal(3)

		for _, id := range []types.RecordID{created1.ID, created2.ID} {
			got, err := repo.Provenance().Get(ctx, id)
			gt.NoError(t, err).Required()
			gt.Bool(t, got.IsActive).False()
		}

		got, err := repo.Provenance().Get(ctx, created3.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, got.IsActive).True()
	})
}

func TestMemoryProvenanceRepository(t *testing.T) {
	runProvenanceRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreProvenanceRepository(t *testing.T) {
	runProvenanceRepositoryTest(t, newFirestoreRepository)
}
