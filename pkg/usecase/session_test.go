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

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Session.CreateSession(ctx, "ביאליק 5, רמת גן", "משה כהן")
	gt.NoError(t, err).Required()
	gt.String(t, string(created.ID)).NotEqual("")
	gt.Value(t, created.Status).Equal(types.SessionStatusDraft)

	t.Run("empty address is rejected", func(t *testing.T) {
		_, err := uc.Session.CreateSession(ctx, "", "")
		gt.Error(t, err).Is(usecase.ErrEmptyAddress)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Session.CreateSession(ctx, "ביאליק 5, רמת גן", "")
	gt.NoError(t, err).Required()

	updated, err := uc.Session.UpdateStatus(ctx, created.ID, types.SessionStatusReview)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.SessionStatusReview)

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := uc.Session.UpdateStatus(ctx, created.ID, types.SessionStatus("bogus"))
		gt.Error(t, err)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.Session.UpdateStatus(ctx, types.NewSessionID(), types.SessionStatusReview)
		gt.Error(t, err).Is(usecase.ErrSessionNotFound)
	})
}

func TestUpdateExtractedData(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	created, err := uc.Session.CreateSession(ctx, "ביאליק 5, רמת גן", "")
	gt.NoError(t, err).Required()

	data := model.ExtractedData{
		"gush": "6638",
		"land_registry": map[string]any{
			"helka": "42",
		},
	}
	gt.NoError(t, uc.Session.UpdateExtractedData(ctx, created.ID, data))

	got, err := repo.Session().Get(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.ExtractedData["gush"]).Equal(any("6638"))

	t.Run("unknown session", func(t *testing.T) {
		err := uc.Session.UpdateExtractedData(ctx, types.NewSessionID(), data)
		gt.Error(t, err).Is(usecase.ErrSessionNotFound)
	})
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Session.CreateSession(ctx, "ביאליק 5, רמת גן", "")
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Session.DeleteSession(ctx, created.ID))

	_, err = uc.Session.GetSession(ctx, created.ID)
	gt.Error(t, err).Is(usecase.ErrSessionNotFound)
}
