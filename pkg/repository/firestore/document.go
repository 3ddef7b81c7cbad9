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

type documentDocument struct {
	ID         string    `firestore:"id"`
	SessionID  string    `firestore:"session_id"`
	Name       string    `firestore:"name"`
	Type       string    `firestore:"type"`
	URL        string    `firestore:"url"`
	PreviewURL string    `firestore:"preview_url"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type documentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDocumentRepository(client *firestore.Client) *documentRepository {
	return &documentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *documentRepository) documentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_documents"
	}
	return "documents"
}

func documentToDocument(doc *model.Document) *documentDocument {
	return &documentDocument{
		ID:         string(doc.ID),
		SessionID:  string(doc.SessionID),
		Name:       doc.Name,
		Type:       string(doc.Type),
		URL:        doc.URL,
		PreviewURL: doc.PreviewURL,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func documentToModel(doc *documentDocument) *model.Document {
	return &model.Document{
		ID:         types.DocumentID(doc.ID),
		SessionID:  types.SessionID(doc.SessionID),
		Name:       doc.Name,
		Type:       types.DocumentType(doc.Type),
		URL:        doc.URL,
		PreviewURL: doc.PreviewURL,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	now := time.Now().UTC()
	if doc.ID == "" {
		doc.ID = types.NewDocumentID()
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	data := documentToDocument(doc)

	docRef := r.client.Collection(r.documentsCollection()).Doc(string(doc.ID))
	if _, err := docRef.Set(ctx, data); err != nil {
		return nil, goerr.Wrap(err, "failed to create document")
	}

	return documentToModel(data), nil
}

func (r *documentRepository) Get(ctx context.Context, id types.DocumentID) (*model.Document, error) {
	docRef := r.client.Collection(r.documentsCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("id", id))
	}

	var data documentDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("id", id))
	}

	return documentToModel(&data), nil
}

func (r *documentRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.Document, error) {
	iter := r.client.Collection(r.documentsCollection()).
		Where("session_id", "==", string(sessionID)).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var docs []*model.Document
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents",
				goerr.V("session_id", sessionID))
		}

		var data documentDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document")
		}
		docs = append(docs, documentToModel(&data))
	}

	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	docRef := r.client.Collection(r.documentsCollection()).Doc(string(doc.ID))

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("id", doc.ID))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("id", doc.ID))
	}

	var current documentDocument
	if err := existing.DataTo(&current); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("id", doc.ID))
	}

	doc.CreatedAt = current.CreatedAt
	doc.UpdatedAt = time.Now().UTC()

	data := documentToDocument(doc)
	if _, err := docRef.Set(ctx, data); err != nil {
		return nil, goerr.Wrap(err, "failed to update document", goerr.V("id", doc.ID))
	}

	return documentToModel(data), nil
}

func (r *documentRepository) Delete(ctx context.Context, id types.DocumentID) error {
	docRef := r.client.Collection(r.documentsCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "document not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get document", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete document", goerr.V("id", id))
	}

	return nil
}
