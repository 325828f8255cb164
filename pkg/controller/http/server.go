package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/usecase"
	"github.com/sheqworks/themis/pkg/utils/errutil"
	"github.com/sheqworks/themis/pkg/utils/logging"
	"github.com/sheqworks/themis/pkg/utils/safe"
)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	validator TokenValidator
}

type Options func(*Server)

// WithAuth enables cookie-based authentication. Without it every request
// runs as the anonymous user.
func WithAuth(validator TokenValidator) Options {
	return func(s *Server) {
		s.validator = validator
	}
}

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

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.validator))

		r.Route("/assessment", func(r chi.Router) {
			r.Post("/", s.createAssessment)
			r.Get("/", s.listAssessments)

			r.Route("/{assessmentID}", func(r chi.Router) {
				r.Get("/", s.getAssessment)
				r.Patch("/", s.updateAssessment)
				r.Post("/legal-mapping", s.runLegalMapping)
				r.Get("/checklist", s.getChecklist)
				r.Post("/answer", s.submitAnswer)
				r.Post("/gap-analysis", s.runGapAnalysis)
				r.Get("/summary", s.getSummary)
			})
		})
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

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
