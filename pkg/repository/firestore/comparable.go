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

type comparableDocument struct {
	ID        string    `firestore:"id"`
	SessionID string    `firestore:"session_id"`
	Address   string    `firestore:"address"`
	SaleDate  time.Time `firestore:"sale_date"`
	AreaSqm   float64   `firestore:"area_sqm"`
	Price     float64   `firestore:"price"`
	CreatedAt time.Time `firestore:"created_at"`
}

type comparableRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newComparableRepository(client *firestore.Client) *comparableRepository {
	return &comparableRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *comparableRepository) comparablesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_comparables"
	}
	return "comparables"
}

func comparableToDocument(comparable *model.Comparable) *comparableDocument {
	return &comparableDocument{
		ID:        string(comparable.ID),
		SessionID: string(comparable.SessionID),
		Address:   comparable.Address,
		SaleDate:  comparable.SaleDate,
		AreaSqm:   comparable.AreaSqm,
		Price:     comparable.Price,
		CreatedAt: comparable.CreatedAt,
	}
}

func comparableToModel(doc *comparableDocument) *model.Comparable {
	return &model.Comparable{
		ID:        types.ComparableID(doc.ID),
		SessionID: types.SessionID(doc.SessionID),
		Address:   doc.Address,
		SaleDate:  doc.SaleDate,
		AreaSqm:   doc.AreaSqm,
		Price:     doc.Price,
		CreatedAt: doc.CreatedAt,
	}
}

func (r *comparableRepository) Create(ctx context.Context, comparable *model.Comparable) (*model.Comparable, error) {
	if comparable.ID == "" {
		comparable.ID = types.NewComparableID()
	}
	comparable.CreatedAt = time.Now().UTC()

	doc := comparableToDocument(comparable)

	docRef := r.client.Collection(r.comparablesCollection()).Doc(string(comparable.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create comparable")
	}

	return comparableToModel(doc), nil
}

func (r *comparableRepository) ListBySession(ctx context.Context, sessionID types.SessionID) ([]*model.Comparable, error) {
	iter := r.client.Collection(r.comparablesCollection()).
		Where("session_id", "==", string(sessionID)).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var comparables []*model.Comparable
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate comparables",
				goerr.V("session_id", sessionID))
		}

		var data comparableDocument
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comparable")
		}
		comparables = append(comparables, comparableToModel(&data))
	}

	return comparables, nil
}

func (r *comparableRepository) Delete(ctx context.Context, id types.ComparableID) error {
	docRef := r.client.Collection(r.comparablesCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "comparable not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get comparable", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete comparable", goerr.V("id", id))
	}

	return nil
}
