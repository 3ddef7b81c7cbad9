package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

type bboxDocument struct {
	X      float64 `firestore:"x"`
	Y      float64 `firestore:"y"`
	Width  float64 `firestore:"width"`
	Height float64 `firestore:"height"`
}

type provenanceDocument struct {
	ID               string        `firestore:"id"`
	SessionID        string        `firestore:"session_id"`
	FieldPath        string        `firestore:"field_path"`
	DocumentID       string        `firestore:"document_id"`
	DocumentName     string        `firestore:"document_name"`
	DocumentType     string        `firestore:"document_type"`
	DocumentURL      string        `firestore:"document_url"`
	PageNumber       int           `firestore:"page_number"`
	BBox             *bboxDocument `firestore:"bbox,omitempty"`
	Confidence       float64       `firestore:"confidence"`
	ExtractionMethod string        `firestore:"extraction_method"`
	IsActive         bool          `firestore:"is_active"`
	VersionNumber    int           `firestore:"version_number"`
	CreatedAt        time.Time     `firestore:"created_at"`
}

type provenanceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProvenanceRepository(client *firestore.Client) *provenanceRepository {
	return &provenanceRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *provenanceRepository) provenanceCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_provenance_records"
	}
	return "provenance_records"
}

func provenanceToDocument(record *model.ProvenanceRecord) *provenanceDocument {
	doc := &provenanceDocument{
		ID:               string(record.ID),
		SessionID:        string(record.SessionID),
		FieldPath:        record.FieldPath,
		DocumentID:       string(record.DocumentID),
		DocumentName:     record.DocumentName,
		DocumentType:     string(record.DocumentType),
		DocumentURL:      record.DocumentURL,
		PageNumber:       record.PageNumber,
		Confidence:       record.Confidence,
		ExtractionMethod: string(record.ExtractionMethod),
		IsActive:         record.IsActive,
		VersionNumber:    record.VersionNumber,
		CreatedAt:        record.CreatedAt,
	}

	if record.BBox != nil {
		doc.BBox = &bboxDocument{
			X:      record.BBox.X,
			Y:      record.BBox.Y,
			Width:  record.BBox.Width,
			Height: record.BBox.Height,
		}
	}

	return doc
}

func provenanceToModel(doc *provenanceDocument) *model.ProvenanceRecord {
	record := &model.ProvenanceRecord{
		ID:               types.RecordID(doc.ID),
		SessionID:        types.SessionID(doc.SessionID),
		FieldPath:        doc.FieldPath,
		DocumentID:       types.DocumentID(doc.DocumentID),
		DocumentName:     doc.DocumentName,
		DocumentType:     types.DocumentType(doc.DocumentType),
		DocumentURL:      doc.DocumentURL,
		PageNumber:       doc.PageNumber,
		Confidence:       doc.Confidence,
		ExtractionMethod: types.ExtractionMethod(doc.ExtractionMethod),
		IsActive:         doc.IsActive,
		VersionNumber:    doc.VersionNumber,
		CreatedAt:        doc.CreatedAt,
	}

	if doc.BBox != nil {
		record.BBox = &model.BBox{
			X:      doc.BBox.X,
			Y:      doc.BBox.Y,
			Width:  doc.BBox.Width,
			Height: doc.BBox.Height,
		}
	}

	return record
}

func (r *provenanceRepository) Create(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error) {
	if record.ID == "" {
		record.ID = types.NewRecordID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	doc := provenanceToDocument(record)

	docRef := r.client.Collection(r.provenanceCollection()).Doc(string(record.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create provenance record")
	}

	return provenanceToModel(doc), nil
}

func (r *provenanceRepository) Get(ctx context.Context, id types.RecordID) (*model.ProvenanceRecord, error) {
	docRef := r.client.Collection(r.provenanceCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "provenance record not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get provenance record", goerr.V("id", id))
	}

	var data provenanceDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to decode provenance record", goerr.V("id", id))
	}

	return provenanceToModel(&data), nil
}

func (r *provenanceRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.ProvenanceRecord, error) {
	iter := r.client.Collection(r.provenanceCollection()).
		Where("session_id", "==", string(sessionID)).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var records []*model.ProvenanceRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate provenance records",
				goerr.V("session_id", sessionID))
		}

		var data provenanceDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode provenance record")
		}
		records = append(records, provenanceToModel(&data))
	}

	return records, nil
}

func (r *provenanceRepository) Update(ctx context.Context, record *model.ProvenanceRecord) (*model.ProvenanceRecord, error) {
	docRef := r.client.Collection(r.provenanceCollection()).Doc(string(record.ID))

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "provenance record not found", goerr.V("id", record.ID))
		}
		return nil, goerr.Wrap(err, "failed to get provenance record", goerr.V("id", record.ID))
	}

	var current provenanceDocument
	if err := existing.DataTo(&current); err != nil {
		return nil, goerr.Wrap(err, "failed to decode provenance record", goerr.V("id", record.ID))
	}

	record.CreatedAt = current.CreatedAt

	doc := provenanceToDocument(record)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update provenance record", goerr.V("id", record.ID))
	}

	return provenanceToModel(doc), nil
}

func (r *provenanceRepository) DeactivateFieldPath(ctx context.Context, sessionID types.SessionID, fieldPath string) (int, error) {
	iter := r.client.Collection(r.provenanceCollection()).
		Where("session_id", "==", string(sessionID)).
		Where("field_path", "==", fieldPath).
		Documents(ctx)
	defer iter.Stop()

	maxVersion := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate provenance records",
				goerr.V("session_id", sessionID), goerr.V("field_path", fieldPath))
		}

		var data provenanceDocument
		if err := doc.DataTo(&data); err != nil {
			return 0, goerr.Wrap(err, "failed to decode provenance record")
		}
		if data.VersionNumber > maxVersion {
			maxVersion = data.VersionNumber
		}
		if !data.IsActive {
			continue
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "is_active", Value: false},
		}); err != nil {
			return 0, goerr.Wrap(err, "failed to deactivate provenance record",
				goerr.V("id", data.ID))
		}
	}

	return maxVersion, nil
}
