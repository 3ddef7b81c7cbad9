package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/service/docstore"
	"github.com/shamay-ai/mekorot/pkg/service/reconcile"
	"github.com/shamay-ai/mekorot/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// ProvenanceUseCase assembles the viewer-ready provenance snapshot of a
// session. Loads are tracked per session with a monotonic generation
// counter so that a slow load finishing after a newer one began never
// overwrites the newer result.
type ProvenanceUseCase struct {
	repo       interfaces.Repository
	docs       docstore.Service
	reconciler *reconcile.Reconciler

	mu    sync.Mutex
	state map[types.SessionID]*snapshotState
}

type snapshotState struct {
	begun     int64
	committed int64
	snapshot  *model.Snapshot
}

func NewProvenanceUseCase(repo interfaces.Repository, docs docstore.Service, reconciler *reconcile.Reconciler) *ProvenanceUseCase {
	return &ProvenanceUseCase{
		repo:       repo,
		docs:       docs,
		reconciler: reconciler,
		state:      make(map[types.SessionID]*snapshotState),
	}
}

// LoadProvenance fetches the session, its provenance records and its
// documents, reconciles them, and returns the snapshot. The session,
// record and document fetches run concurrently.
func (uc *ProvenanceUseCase) LoadProvenance(ctx context.Context, sessionID types.SessionID) (*model.Snapshot, error) {
	gen := uc.beginLoad(sessionID)

	var (
		session *model.Session
		records []*model.ProvenanceRecord
		docs    []*model.Document
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s, err := uc.repo.Session().Get(egCtx, sessionID)
		if err != nil {
			return goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
		}
		session = s
		return nil
	})
	eg.Go(func() error {
		r, err := uc.repo.Provenance().ListBySession(egCtx, sessionID)
		if err != nil {
			return goerr.Wrap(err, "failed to list provenance records", goerr.V(SessionIDKey, sessionID))
		}
		records = r
		return nil
	})
	eg.Go(func() error {
		d, err := uc.repo.Document().ListBySession(egCtx, sessionID)
		if err != nil {
			return goerr.Wrap(err, "failed to list documents", goerr.V(SessionIDKey, sessionID))
		}
		docs = d
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	uc.resolveDocumentURLs(ctx, docs)

	idx := reconcile.BuildIndex(records)
	snapshot := uc.reconciler.Reconcile(session.ExtractedData, idx, docs)

	uc.commit(sessionID, gen, snapshot)
	return snapshot, nil
}

// CachedSnapshot returns the most recently committed snapshot of a session
// and its generation, if any load has completed
func (uc *ProvenanceUseCase) CachedSnapshot(sessionID types.SessionID) (*model.Snapshot, int64, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.state[sessionID]
	if !ok || s.snapshot == nil {
		return nil, 0, false
	}
	return s.snapshot, s.committed, true
}

// resolveDocumentURLs swaps stored gs:// references for signed https URLs.
// A failed resolution keeps the stored reference and logs, so one broken
// document does not take the whole snapshot down.
func (uc *ProvenanceUseCase) resolveDocumentURLs(ctx context.Context, docs []*model.Document) {
	if uc.docs == nil {
		return
	}

	for _, doc := range docs {
		raw := doc.ViewerURL()
		if raw == "" {
			continue
		}
		resolved, err := uc.docs.ResolveURL(ctx, raw)
		if err != nil {
			logging.From(ctx).Warn("failed to resolve document URL",
				"document_id", doc.ID, "error", err)
			continue
		}
		doc.PreviewURL = resolved
	}
}

func (uc *ProvenanceUseCase) beginLoad(sessionID types.SessionID) int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.state[sessionID]
	if !ok {
		s = &snapshotState{}
		uc.state[sessionID] = s
	}
	s.begun++
	return s.begun
}

func (uc *ProvenanceUseCase) commit(sessionID types.SessionID, gen int64, snapshot *model.Snapshot) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.state[sessionID]
	if s == nil || gen < s.begun {
		// a newer load began while this one was running
		return
	}
	s.committed = gen
	s.snapshot = snapshot
}
