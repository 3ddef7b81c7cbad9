package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/shamay-ai/mekorot/pkg/controller/http"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/repository/memory"
	"github.com/shamay-ai/mekorot/pkg/usecase"
)

func newTestServer(t *testing.T) (*controller.Server, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	return controller.New(usecase.New(repo)), repo
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestSessionLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions", map[string]string{
		"property_address": "דיזנגוף 100, תל אביב",
		"client_name":      "משה כהן",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.String(t, created.ID).NotEqual("")
	gt.Value(t, created.Status).Equal("DRAFT")

	rec = doJSON(t, srv, http.MethodPatch, "/api/sessions/"+created.ID, map[string]string{
		"status": "REVIEW",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestProvenanceEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	session, err := repo.Session().Create(ctx, &model.Session{
		PropertyAddress: "הרצל 1",
		ExtractedData: model.ExtractedData{
			"gush": "6638",
		},
	})
	gt.NoError(t, err).Required()

	_, err = repo.Provenance().Create(ctx, &model.ProvenanceRecord{
		SessionID:  session.ID,
		FieldPath:  "gush",
		PageNumber: 1,
		Confidence: 0.9,
		IsActive:   true,
	})
	gt.NoError(t, err).Required()

	rec := doJSON(t, srv, http.MethodGet, "/api/sessions/"+session.ID.String()+"/provenance", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var snapshot model.Snapshot
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot)).Required()
	gt.Array(t, snapshot.Fields).Length(1)
	gt.Value(t, snapshot.Fields[0].ID).Equal("gush")
	gt.Value(t, snapshot.Fields[0].Status).Equal(types.FieldStatusOK)
	gt.Value(t, snapshot.Meta.Direction).Equal("rtl")

	t.Run("unknown session", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/sessions/nope/provenance", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestRecordEndpoints(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	session, err := repo.Session().Create(ctx, &model.Session{
		PropertyAddress: "הרצל 1",
		ExtractedData:   model.ExtractedData{"gush": "6638"},
	})
	gt.NoError(t, err).Required()

	base := "/api/sessions/" + session.ID.String()

	rec := doJSON(t, srv, http.MethodPost, base+"/records", map[string]any{
		"field_path":  "gush",
		"page_number": 2,
		"confidence":  0.85,
		"bbox":        map[string]float64{"x": 1, "y": 2, "width": 3, "height": 4},
		"is_active":   true,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()

	rec = doJSON(t, srv, http.MethodGet, base+"/records", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodPatch, "/api/records/"+created.ID, map[string]string{
		"value": "6639",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var corrected struct {
		ExtractionMethod string `json:"extraction_method"`
		VersionNumber    int    `json:"version_number"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corrected)).Required()
	gt.Value(t, corrected.ExtractionMethod).Equal("manual")

	t.Run("empty value", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPatch, "/api/records/"+created.ID, map[string]string{})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown record", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPatch, "/api/records/"+types.NewRecordID().String(), map[string]string{"value": "x"})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestComparableEndpoints(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	session, err := repo.Session().Create(ctx, &model.Session{PropertyAddress: "הרצל 1"})
	gt.NoError(t, err).Required()

	base := "/api/sessions/" + session.ID.String()

	for _, c := range []map[string]any{
		{"address": "הרצל 10", "area_sqm": 80, "price": 2_400_000},
		{"address": "הרצל 12", "area_sqm": 100, "price": 3_000_000},
	} {
		rec := doJSON(t, srv, http.MethodPost, base+"/comparables", c)
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	}

	rec := doJSON(t, srv, http.MethodGet, base+"/comparables/stats", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var summary struct {
		Count int     `json:"count"`
		Mean  float64 `json:"mean"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary)).Required()
	gt.Value(t, summary.Count).Equal(2)
	gt.Value(t, summary.Mean).Equal(30_000.0)

	t.Run("invalid sigma", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, base+"/comparables/stats?sigma=abc", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestDraftWithoutService(t *testing.T) {
	srv, repo := newTestServer(t)

	session, err := repo.Session().Create(context.Background(), &model.Session{PropertyAddress: "הרצל 1"})
	gt.NoError(t, err).Required()

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+session.ID.String()+"/draft", nil)
	gt.Value(t, rec.Code).Equal(http.StatusServiceUnavailable)
}
