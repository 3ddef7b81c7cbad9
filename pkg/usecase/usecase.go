package usecase

import (
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/service/docstore"
	"github.com/shamay-ai/mekorot/pkg/service/draft"
	"github.com/shamay-ai/mekorot/pkg/service/reconcile"
)

type UseCases struct {
	repo    interfaces.Repository
	docs    docstore.Service
	drafter draft.Service
	labels  model.Labels

	Session    *SessionUseCase
	Provenance *ProvenanceUseCase
	Record     *RecordUseCase
	Draft      *DraftUseCase
	Comparable *ComparableUseCase
}

type Option func(*UseCases)

// WithDocStore enables signed-URL resolution for stored documents
func WithDocStore(docs docstore.Service) Option {
	return func(uc *UseCases) {
		uc.docs = docs
	}
}

// WithDraftService enables LLM-backed draft generation
func WithDraftService(drafter draft.Service) Option {
	return func(uc *UseCases) {
		uc.drafter = drafter
	}
}

// WithLabels overrides the built-in Hebrew field label dictionary
func WithLabels(labels model.Labels) Option {
	return func(uc *UseCases) {
		uc.labels = labels
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	reconcilerOpts := []reconcile.Option{}
	if uc.labels != nil {
		reconcilerOpts = append(reconcilerOpts, reconcile.WithLabels(uc.labels))
	}

	uc.Session = NewSessionUseCase(repo)
	uc.Provenance = NewProvenanceUseCase(repo, uc.docs, reconcile.New(reconcilerOpts...))
	uc.Record = NewRecordUseCase(repo)
	uc.Draft = NewDraftUseCase(repo, uc.Provenance, uc.drafter)
	uc.Comparable = NewComparableUseCase(repo)

	return uc
}
