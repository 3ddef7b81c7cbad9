package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// provenanceRepository keeps records in a slice so ListBySession preserves
// insertion order, which the reconciliation index relies on
type provenanceRepository struct {
	mu      sync.RWMutex
	order   []types.RecordID
	records map[types.RecordID]*model.ProvenanceRecord
}

func newProvenanceRepository() *provenanceRepository {
	return &provenanceRepository{
		records: make(map[types.RecordID]*model.ProvenanceRecord),
	}
}

// copyRecord creates a deep copy of a provenance record
func copyRecord(record *model.ProvenanceRecord) *model.ProvenanceRecord {
	copied := *record
	if record.BBox != nil {
		bbox := *record.BBox
		copied.BBox = &bbox
	}
	return &copied
}

func (r *provenanceRepository) Create(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRecord(record)
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, exists := r.records[created.ID]; !exists {
		r.order = append(r.order, created.ID)
	}
	r.records[created.ID] = created
	return copyRecord(created), nil
}

func (r *provenanceRepository) Get(ctx context.Context, id types.RecordID) (*model.ProvenanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "provenance record not found", goerr.V("id", id))
	}

	return copyRecord(record), nil
}

func (r *provenanceRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.ProvenanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.ProvenanceRecord
	for _, id := range r.order {
		record := r.records[id]
		if record.SessionID == sessionID {
			records = append(records, copyRecord(record))
		}
	}

	return records, nil
}

func (r *provenanceRepository) Update(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[record.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "provenance record not found", goerr.V("id", record.ID))
	}

	updated := copyRecord(record)
	updated.CreatedAt = existing.CreatedAt

	r.records[updated.ID] = updated
	return copyRecord(updated), nil
}

func (r *provenanceRepository) DeactivateFieldPath(ctx context.Context, sessionID types.SessionID, fieldPath string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxVersion := 0
	for _, record := range r.records {
		if record.SessionID != sessionID || record.FieldPath != fieldPath {
			continue
		}
		if record.VersionNumber > maxVersion {
			maxVersion = record.VersionNumber
		}
		record.IsActive = false
	}

	return maxVersion, nil
}
