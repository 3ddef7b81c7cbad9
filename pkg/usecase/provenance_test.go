package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/repository/memory"
	"github.com/shamay-ai/mekorot/pkg/usecase"
)

func seedSession(t *testing.T, repo *memory.Memory, data model.ExtractedData) *model.Session {
	t.Helper()
	session, err := repo.Session().Create(context.Background(), &model.Session{
		PropertyAddress: "דיזנגוף 100, תל אביב",
		Status:          types.SessionStatusReview,
		ExtractedData:   data,
	})
	gt.NoError(t, err).Required()
	return session
}

func TestLoadProvenance(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	session := seedSession(t, repo, model.ExtractedData{
		"gush":  "6638",
		"helka": "42",
	})

	doc, err := repo.Document().Create(ctx, &model.Document{
		SessionID: session.ID,
		Name:      "נסח טאבו",
		Type:      types.DocumentTypeTabuExtract,
		URL:       "https://files.example.com/tabu.pdf",
	})
	gt.NoError(t, err).Required()

	_, err = repo.Provenance().Create(ctx, &model.ProvenanceRecord{
		SessionID:    session.ID,
		FieldPath:    "gush",
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		PageNumber:   2,
		BBox:         &model.BBox{X: 10, Y: 20, Width: 30, Height: 40},
		Confidence:   0.95,
		IsActive:     true,
	})
	gt.NoError(t, err).Required()

	snapshot, err := uc.Provenance.LoadProvenance(ctx, session.ID)
	gt.NoError(t, err).Required()

	gt.Array(t, snapshot.Fields).Length(2)

	var gush, helka *model.ReconciledField
	for i := range snapshot.Fields {
		switch snapshot.Fields[i].ID {
		case "gush":
			gush = &snapshot.Fields[i]
		case "helka":
			helka = &snapshot.Fields[i]
		}
	}
	gt.Value(t, gush).NotNil()
	gt.Value(t, gush.Status).Equal(types.FieldStatusOK)
	gt.Array(t, gush.Sources).Length(1)
	gt.Value(t, gush.Sources[0].Page).Equal(2)

	gt.Value(t, helka).NotNil()
	gt.Value(t, helka.Status).Equal(types.FieldStatusMissing)

	gt.Array(t, snapshot.Doc.Pages).Length(1)
	gt.Value(t, snapshot.Meta.Direction).Equal("rtl")

	cached, gen, ok := uc.Provenance.CachedSnapshot(session.ID)
	gt.Bool(t, ok).True()
	gt.Value(t, gen).Equal(int64(1))
	gt.Value(t, cached).Equal(snapshot)
}

func TestLoadProvenanceUnknownSession(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	_, err := uc.Provenance.LoadProvenance(context.Background(), types.NewSessionID())
	gt.Error(t, err).Is(usecase.ErrSessionNotFound)
}

func TestStaleLoadDoesNotOverwrite(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo).Provenance

	sessionID := types.NewSessionID()
	older := &model.Snapshot{Meta: model.NewMeta()}
	newer := &model.Snapshot{Meta: model.NewMeta(), Fields: []model.ReconciledField{{ID: "gush"}}}

	gen1 := uc.BeginLoad(sessionID)
	gen2 := uc.BeginLoad(sessionID)
	gt.Value(t, gen2).Equal(gen1 + 1)

	uc.Commit(sessionID, gen2, newer)
	uc.Commit(sessionID, gen1, older) // finished late, must lose

	got, gen, ok := uc.CachedSnapshot(sessionID)
	gt.Bool(t, ok).True()
	gt.Value(t, gen).Equal(gen2)
	gt.Value(t, got).Equal(newer)
}
