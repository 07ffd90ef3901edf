package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/bookparse/internal/config"
	"github.com/dgallion1/bookparse/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for bookparse.
type Server struct {
	router       chi.Router
	indexer      *pipeline.Indexer
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		indexer:      orch.Indexer(),
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/books", s.handleUpload)
		r.Post("/api/books/batch", s.handleBatchUpload)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats", s.handleStats)

		r.Get("/api/books", s.handleListBooks)
		r.Route("/api/books/{handle}", func(r chi.Router) {
			r.Get("/", s.handleGetBook)
			r.Delete("/", s.handleDeleteBook)
			r.Get("/paragraphs", s.handleListParagraphs)
			r.Get("/paragraphs/{id}", s.handleParagraphInfo)
			r.Get("/paragraphs/{id}/text", s.handleParagraphText)
			r.Get("/paragraphs/{id}/sentences", s.handleParagraphSentences)
			r.Get("/sentences/{id}", s.handleSentenceInfo)
			r.Get("/sentences/{id}/text", s.handleSentenceText)
			r.Get("/chunks", s.handleChunks)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
