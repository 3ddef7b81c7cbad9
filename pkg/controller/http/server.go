package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shamay-ai/mekorot/pkg/usecase"
	"github.com/shamay-ai/mekorot/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", createSessionHandler(uc))
			r.Get("/", listSessionsHandler(uc))

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", getSessionHandler(uc))
				r.Patch("/", updateSessionStatusHandler(uc))
				r.Delete("/", deleteSessionHandler(uc))
				r.Put("/extracted", updateExtractedDataHandler(uc))

				r.Get("/provenance", provenanceHandler(uc))
				r.Get("/records", listRecordsHandler(uc))
				r.Post("/records", addRecordHandler(uc))

				r.Get("/comparables", listComparablesHandler(uc))
				r.Post("/comparables", addComparableHandler(uc))
				r.Get("/comparables/stats", comparableStatsHandler(uc))

				r.Post("/draft", draftHandler(uc))
			})
		})

		r.Patch("/records/{recordID}", correctFieldHandler(uc))
		r.Delete("/comparables/{comparableID}", deleteComparableHandler(uc))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
