package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/service/draft"
)

// DraftUseCase generates the descriptive Hebrew text blocks of the
// valuation document from a session's reconciled data
type DraftUseCase struct {
	repo       interfaces.Repository
	provenance *ProvenanceUseCase
	drafter    draft.Service
}

func NewDraftUseCase(repo interfaces.Repository, provenance *ProvenanceUseCase, drafter draft.Service) *DraftUseCase {
	return &DraftUseCase{
		repo:       repo,
		provenance: provenance,
		drafter:    drafter,
	}
}

// GenerateDescription reconciles the session and asks the draft service
// for the property description section
func (uc *DraftUseCase) GenerateDescription(ctx context.Context, sessionID types.SessionID) (string, error) {
	if uc.drafter == nil {
		return "", goerr.Wrap(ErrDraftUnavailable, "draft service is not configured")
	}

	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return "", goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	snapshot, err := uc.provenance.LoadProvenance(ctx, sessionID)
	if err != nil {
		return "", err
	}

	result, err := uc.drafter.Describe(ctx, draft.Input{
		PropertyAddress: session.PropertyAddress,
		Fields:          snapshot.Fields,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate description", goerr.V(SessionIDKey, sessionID))
	}

	return result.Text, nil
}
