package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

type SessionUseCase struct {
	repo interfaces.Repository
}

func NewSessionUseCase(repo interfaces.Repository) *SessionUseCase {
	return &SessionUseCase{repo: repo}
}

func (uc *SessionUseCase) CreateSession(ctx context.Context, propertyAddress, clientName string) (*model.Session, error) {
	if propertyAddress == "" {
		return nil, goerr.Wrap(ErrEmptyAddress, "property address is required")
	}

	session := &model.Session{
		PropertyAddress: propertyAddress,
		ClientName:      clientName,
		Status:          types.SessionStatusDraft,
		ExtractedData:   model.ExtractedData{},
	}

	created, err := uc.repo.Session().Create(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}
	return created, nil
}

func (uc *SessionUseCase) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	return session, nil
}

func (uc *SessionUseCase) ListSessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := uc.repo.Session().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions")
	}
	return sessions, nil
}

// UpdateStatus moves the session along the wizard lifecycle. Unknown status
// strings are rejected before touching the repository.
func (uc *SessionUseCase) UpdateStatus(ctx context.Context, id types.SessionID, status types.SessionStatus) (*model.Session, error) {
	status = status.Normalize()
	if !status.IsValid() {
		return nil, goerr.New("invalid session status", goerr.V("status", status))
	}

	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}

	session.Status = status
	updated, err := uc.repo.Session().Update(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update session", goerr.V(SessionIDKey, id))
	}
	return updated, nil
}

// UpdateExtractedData replaces the session's extracted-data snapshot, as
// delivered by the extraction pipeline
func (uc *SessionUseCase) UpdateExtractedData(ctx context.Context, id types.SessionID, data model.ExtractedData) error {
	if _, err := uc.repo.Session().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}

	if err := uc.repo.Session().UpdateExtractedData(ctx, id, data); err != nil {
		return goerr.Wrap(err, "failed to update extracted data", goerr.V(SessionIDKey, id))
	}
	return nil
}

func (uc *SessionUseCase) DeleteSession(ctx context.Context, id types.SessionID) error {
	if _, err := uc.repo.Session().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}

	if err := uc.repo.Session().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V(SessionIDKey, id))
	}
	return nil
}
