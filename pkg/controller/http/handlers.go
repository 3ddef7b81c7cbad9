package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/usecase"
	"github.com/shamay-ai/mekorot/pkg/utils/async"
	"github.com/shamay-ai/mekorot/pkg/utils/errutil"
	"github.com/shamay-ai/mekorot/pkg/utils/safe"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps use case sentinels to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrEmptyValue),
		errors.Is(err, usecase.ErrEmptyAddress):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrDraftUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

type sessionResponse struct {
	ID              string              `json:"id"`
	PropertyAddress string              `json:"property_address"`
	ClientName      string              `json:"client_name,omitempty"`
	Status          string              `json:"status"`
	ExtractedData   model.ExtractedData `json:"extracted_data"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toSessionResponse(s *model.Session) sessionResponse {
	return sessionResponse{
		ID:              s.ID.String(),
		PropertyAddress: s.PropertyAddress,
		ClientName:      s.ClientName,
		Status:          s.Status.Normalize().String(),
		ExtractedData:   s.ExtractedData,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func createSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		PropertyAddress string `json:"property_address"`
		ClientName      string `json:"client_name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		session, err := uc.Session.CreateSession(r.Context(), req.PropertyAddress, req.ClientName)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}

		writeJSON(w, r, http.StatusCreated, toSessionResponse(session))
	}
}

func listSessionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Sessions []sessionResponse `json:"sessions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := uc.Session.ListSessions(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}

		resp := response{Sessions: make([]sessionResponse, len(sessions))}
		for i, s := range sessions {
			resp.Sessions[i] = toSessionResponse(s)
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func getSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := uc.Session.GetSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(session))
	}
}

func updateSessionStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		session, err := uc.Session.UpdateStatus(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), types.SessionStatus(req.Status))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(session))
	}
}

func deleteSessionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Session.DeleteSession(r.Context(), types.SessionID(chi.URLParam(r, "sessionID"))); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateExtractedDataHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data model.ExtractedData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		if err := uc.Session.UpdateExtractedData(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), data); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func provenanceHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := uc.Provenance.LoadProvenance(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, snapshot)
	}
}

func listRecordsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Records []*model.ProvenanceRecord `json:"records"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		records, err := uc.Record.ListRecords(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, response{Records: records})
	}
}

func addRecordHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record model.ProvenanceRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		created, err := uc.Record.AddRecord(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), &record)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusCreated, created)
	}
}

func correctFieldHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Value string `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		created, err := uc.Record.CorrectField(r.Context(), types.RecordID(chi.URLParam(r, "recordID")), req.Value)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}

		// re-warm the cached snapshot so the next viewer load is current
		sessionID := created.SessionID
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := uc.Provenance.LoadProvenance(ctx, sessionID)
			return err
		})

		writeJSON(w, r, http.StatusOK, created)
	}
}

type comparableResponse struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	SaleDate    time.Time `json:"sale_date"`
	AreaSqm     float64   `json:"area_sqm"`
	Price       float64   `json:"price"`
	PricePerSqm float64   `json:"price_per_sqm"`
	CreatedAt   time.Time `json:"created_at"`
}

func toComparableResponse(c *model.Comparable) comparableResponse {
	return comparableResponse{
		ID:          c.ID.String(),
		Address:     c.Address,
		SaleDate:    c.SaleDate,
		AreaSqm:     c.AreaSqm,
		Price:       c.Price,
		PricePerSqm: c.PricePerSqm(),
		CreatedAt:   c.CreatedAt,
	}
}

func listComparablesHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Comparables []comparableResponse `json:"comparables"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		comps, err := uc.Comparable.ListComparables(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}

		resp := response{Comparables: make([]comparableResponse, len(comps))}
		for i, c := range comps {
			resp.Comparables[i] = toComparableResponse(c)
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func addComparableHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Address  string    `json:"address"`
		SaleDate time.Time `json:"sale_date"`
		AreaSqm  float64   `json:"area_sqm"`
		Price    float64   `json:"price"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		created, err := uc.Comparable.AddComparable(r.Context(),
			types.SessionID(chi.URLParam(r, "sessionID")),
			req.Address, req.SaleDate, req.AreaSqm, req.Price)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusCreated, toComparableResponse(created))
	}
}

func deleteComparableHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Comparable.DeleteComparable(r.Context(), types.ComparableID(chi.URLParam(r, "comparableID"))); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func comparableStatsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sigma float64
		if raw := r.URL.Query().Get("sigma"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid sigma", goerr.V("sigma", raw)), http.StatusBadRequest)
				return
			}
			sigma = parsed
		}

		summary, err := uc.Comparable.Stats(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")), sigma)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, summary)
	}
}

func draftHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Text string `json:"text"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		text, err := uc.Draft.GenerateDescription(r.Context(), types.SessionID(chi.URLParam(r, "sessionID")))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusForError(err))
			return
		}
		writeJSON(w, r, http.StatusOK, response{Text: text})
	}
}
