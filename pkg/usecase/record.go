package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// RecordUseCase manages provenance records, including the manual
// correction path used by the review screen
type RecordUseCase struct {
	repo interfaces.Repository
}

func NewRecordUseCase(repo interfaces.Repository) *RecordUseCase {
	return &RecordUseCase{repo: repo}
}

// AddRecord attaches a new provenance record to a session, as delivered by
// the extraction pipeline
func (uc *RecordUseCase) AddRecord(ctx context.Context, sessionID types.SessionID, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error) {
	if record.FieldPath == "" {
		return nil, goerr.New("field path is required", goerr.V(SessionIDKey, sessionID))
	}

	if _, err := uc.repo.Session().Get(ctx, sessionID); err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	record.SessionID = sessionID
	created, err := uc.repo.Provenance().Create(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create provenance record",
			goerr.V(SessionIDKey, sessionID), goerr.V(FieldPathKey, record.FieldPath))
	}
	return created, nil
}

// ListRecords returns all provenance records of a session, active and
// inactive, in insertion order
func (uc *RecordUseCase) ListRecords(ctx context.Context, sessionID types.SessionID) ([]*model.ProvenanceRecord, error) {
	records, err := uc.repo.Provenance().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list provenance records", goerr.V(SessionIDKey, sessionID))
	}
	return records, nil
}

// CorrectField records a human override of a field value: every active
// record of the field path is deactivated, a new manual record at full
// confidence supersedes them, and the session's extracted data is updated
// to the corrected value
func (uc *RecordUseCase) CorrectField(ctx context.Context, recordID types.RecordID, value string) (*model.ProvenanceRecord, error) {
	if value == "" {
		return nil, goerr.Wrap(ErrEmptyValue, "corrected value is required", goerr.V(RecordIDKey, recordID))
	}

	prev, err := uc.repo.Provenance().Get(ctx, recordID)
	if err != nil {
		return nil, goerr.Wrap(ErrRecordNotFound, "record not found", goerr.V(RecordIDKey, recordID))
	}

	session, err := uc.repo.Session().Get(ctx, prev.SessionID)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, prev.SessionID))
	}

	maxVersion, err := uc.repo.Provenance().DeactivateFieldPath(ctx, prev.SessionID, prev.FieldPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to deactivate field path",
			goerr.V(SessionIDKey, prev.SessionID), goerr.V(FieldPathKey, prev.FieldPath))
	}

	// The manual record keeps the superseded record's document anchor so
	// the viewer can still jump to where the original value came from
	manual := &model.ProvenanceRecord{
		SessionID:        prev.SessionID,
		FieldPath:        prev.FieldPath,
		DocumentID:       prev.DocumentID,
		DocumentName:     prev.DocumentName,
		DocumentType:     prev.DocumentType,
		DocumentURL:      prev.DocumentURL,
		PageNumber:       prev.PageNumber,
		BBox:             prev.BBox,
		Confidence:       1.0,
		ExtractionMethod: types.ExtractionManual,
		IsActive:         true,
		VersionNumber:    maxVersion + 1,
	}

	created, err := uc.repo.Provenance().Create(ctx, manual)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create manual record",
			goerr.V(SessionIDKey, prev.SessionID), goerr.V(FieldPathKey, prev.FieldPath))
	}

	data := session.ExtractedData
	if data == nil {
		data = model.ExtractedData{}
	}
	applyValue(data, prev.FieldPath, value)
	if err := uc.repo.Session().UpdateExtractedData(ctx, prev.SessionID, data); err != nil {
		return nil, goerr.Wrap(err, "failed to update extracted data",
			goerr.V(SessionIDKey, prev.SessionID), goerr.V(FieldPathKey, prev.FieldPath))
	}

	return created, nil
}

// applyValue writes a corrected value into the extracted data at its field
// path. Dotted paths address nested structures, which are created on demand.
func applyValue(data model.ExtractedData, fieldPath, value string) {
	structure, key, nested := strings.Cut(fieldPath, ".")
	if !nested {
		data[fieldPath] = value
		return
	}

	obj, ok := data[structure].(map[string]any)
	if !ok {
		obj = map[string]any{}
		data[structure] = obj
	}
	obj[key] = value
}
