package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/chunker"
	"github.com/dgallion1/bookparse/internal/registry"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"books": s.indexer.Books().List()})
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	writeJSON(w, http.StatusOK, map[string]any{
		"book": lease.Meta,
		"info": lease.Book.Info(),
	})
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	h, ok := parseHandle(w, r)
	if !ok {
		return
	}
	if err := s.indexer.Books().Dispose(h); err != nil {
		bookError(w, err)
		return
	}
	s.log.Info("disposed book", "handle", h)
	writeJSON(w, http.StatusOK, map[string]any{"handle": h, "disposed": true})
}

func (s *Server) handleListParagraphs(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	out := make([]book.ParagraphInfo, 0, lease.Book.Info().Paragraphs)
	for p := range lease.Book.Paragraphs() {
		out = append(out, p.Info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"paragraphs": out})
}

func (s *Server) handleParagraphInfo(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	info, err := lease.Book.ParagraphInfo(book.ParagraphID(id))
	if err != nil {
		bookError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleParagraphText(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	text, err := lease.Book.AppendParagraphText(nil, book.ParagraphID(id))
	if err != nil {
		bookError(w, err)
		return
	}
	writeText(w, text)
}

func (s *Server) handleParagraphSentences(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	info, err := lease.Book.ParagraphInfo(book.ParagraphID(id))
	if err != nil {
		bookError(w, err)
		return
	}
	out := make([]book.SentenceInfo, 0, info.Sentences)
	for i := range info.Sentences {
		si, err := lease.Book.SentenceInfo(book.SentenceID(info.SentenceFirst + i))
		if err != nil {
			bookError(w, err)
			return
		}
		out = append(out, si)
	}
	writeJSON(w, http.StatusOK, map[string]any{"paragraph": info, "sentences": out})
}

func (s *Server) handleSentenceInfo(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	info, err := lease.Book.SentenceInfo(book.SentenceID(id))
	if err != nil {
		bookError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSentenceText(w http.ResponseWriter, r *http.Request) {
	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	text, err := lease.Book.AppendSentenceText(nil, book.SentenceID(id))
	if err != nil {
		bookError(w, err)
		return
	}
	writeText(w, text)
}

// handleChunks packs the book's sentences into token-bounded windows.
// ?size= and ?overlap= override the configured defaults.
func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	cfg := chunker.Config{ChunkSize: s.cfg.ChunkSize, ChunkOverlap: s.cfg.ChunkOverlap}
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "invalid size", http.StatusBadRequest)
			return
		}
		cfg.ChunkSize = n
	}
	if v := r.URL.Query().Get("overlap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "invalid overlap", http.StatusBadRequest)
			return
		}
		cfg.ChunkOverlap = n
	}

	lease, ok := s.acquire(w, r)
	if !ok {
		return
	}
	defer lease.Release()
	writeJSON(w, http.StatusOK, map[string]any{"chunks": chunker.Split(lease.Book, cfg)})
}

// acquire leases the book named by the {handle} URL parameter. On failure
// the error response is already written.
func (s *Server) acquire(w http.ResponseWriter, r *http.Request) (*registry.Lease, bool) {
	h, ok := parseHandle(w, r)
	if !ok {
		return nil, false
	}
	lease, err := s.indexer.Books().Acquire(h)
	if err != nil {
		bookError(w, err)
		return nil, false
	}
	return lease, true
}

func parseHandle(w http.ResponseWriter, r *http.Request) (registry.Handle, bool) {
	h, err := strconv.ParseUint(chi.URLParam(r, "handle"), 10, 64)
	if err != nil || h == 0 {
		jsonError(w, "invalid handle", http.StatusBadRequest)
		return 0, false
	}
	return registry.Handle(h), true
}

func parseID(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return uint32(id), true
}

func bookError(w http.ResponseWriter, err error) {
	var rangeErr *book.OutOfRangeError
	switch {
	case errors.As(err, &rangeErr):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": err.Error(),
			"count": rangeErr.Count,
		})
	case errors.Is(err, registry.ErrUnknownHandle):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeText(w http.ResponseWriter, text []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	w.Write(text)
}
