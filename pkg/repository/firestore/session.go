package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

type sessionDocument struct {
	ID              string    `firestore:"id"`
	PropertyAddress string    `firestore:"property_address"`
	ClientName      string    `firestore:"client_name"`
	Status          string    `firestore:"status"`
	ExtractedJSON   string    `firestore:"extracted_json"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *sessionRepository) sessionsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_sessions"
	}
	return "sessions"
}

// The extracted-data bag has arbitrary keys, so it is stored as one JSON
// string rather than a Firestore map
func sessionToDocument(session *model.Session) (*sessionDocument, error) {
	doc := &sessionDocument{
		ID:              string(session.ID),
		PropertyAddress: session.PropertyAddress,
		ClientName:      session.ClientName,
		Status:          string(session.Status),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}

	if session.ExtractedData != nil {
		raw, err := json.Marshal(session.ExtractedData)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode extracted data")
		}
		doc.ExtractedJSON = string(raw)
	}

	return doc, nil
}

func sessionToModel(doc *sessionDocument) *model.Session {
	session := &model.Session{
		ID:              types.SessionID(doc.ID),
		PropertyAddress: doc.PropertyAddress,
		ClientName:      doc.ClientName,
		Status:          types.SessionStatus(doc.Status).Normalize(),
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}

	if doc.ExtractedJSON != "" {
		var data model.ExtractedData
		if err := json.Unmarshal([]byte(doc.ExtractedJSON), &data); err == nil {
			session.ExtractedData = data
		}
	}

	return session
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	now := time.Now().UTC()
	if session.ID == "" {
		session.ID = types.NewSessionID()
	}
	session.Status = session.Status.Normalize()
	session.CreatedAt = now
	session.UpdatedAt = now

	doc, err := sessionToDocument(session)
	if err != nil {
		return nil, err
	}

	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(session.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}

	return sessionToModel(doc), nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.Session, error) {
	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("id", id))
	}

	var data sessionDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session", goerr.V("id", id))
	}

	return sessionToModel(&data), nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*model.Session, error) {
	iter := r.client.Collection(r.sessionsCollection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var sessions []*model.Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sessions")
		}

		var data sessionDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode session")
		}
		sessions = append(sessions, sessionToModel(&data))
	}

	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) (*model.Session, error) {
	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(session.ID))

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", session.ID))
		}
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("id", session.ID))
	}

	var current sessionDocument
	if err := existing.DataTo(&current); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session", goerr.V("id", session.ID))
	}

	session.CreatedAt = current.CreatedAt
	session.UpdatedAt = time.Now().UTC()

	doc, err := sessionToDocument(session)
	if err != nil {
		return nil, err
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update session", goerr.V("id", session.ID))
	}

	return sessionToModel(doc), nil
}

func (r *sessionRepository) UpdateExtractedData(ctx context.Context, id types.SessionID, data model.ExtractedData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return goerr.Wrap(err, "failed to encode extracted data", goerr.V("id", id))
	}

	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(id))
	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "extracted_json", Value: string(raw)},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update extracted data", goerr.V("id", id))
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	docRef := r.client.Collection(r.sessionsCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get session", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V("id", id))
	}

	return nil
}
