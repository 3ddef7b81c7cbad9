package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/repository/memory"
	"github.com/shamay-ai/mekorot/pkg/service/draft"
	"github.com/shamay-ai/mekorot/pkg/usecase"
)

type mockDraftService struct {
	describe func(ctx context.Context, input draft.Input) (*draft.Result, error)
}

func (m *mockDraftService) Describe(ctx context.Context, input draft.Input) (*draft.Result, error) {
	return m.describe(ctx, input)
}

func TestGenerateDescription(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	var gotInput draft.Input
	mock := &mockDraftService{
		describe: func(_ context.Context, input draft.Input) (*draft.Result, error) {
			gotInput = input
			return &draft.Result{Text: "דירת 4 חדרים בקומה שלישית"}, nil
		},
	}
	uc := usecase.New(repo, usecase.WithDraftService(mock))

	session := seedSession(t, repo, model.ExtractedData{
		"gush":  "6638",
		"helka": "42",
	})

	text, err := uc.Draft.GenerateDescription(ctx, session.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, text).Equal("דירת 4 חדרים בקומה שלישית")
	gt.Value(t, gotInput.PropertyAddress).Equal(session.PropertyAddress)
	gt.Array(t, gotInput.Fields).Length(2)
}

func TestGenerateDescriptionWithoutService(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)

	session := seedSession(t, repo, model.ExtractedData{})

	_, err := uc.Draft.GenerateDescription(context.Background(), session.ID)
	gt.Error(t, err).Is(usecase.ErrDraftUnavailable)
}
