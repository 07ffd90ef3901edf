package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/parser"
	"github.com/dgallion1/bookparse/internal/pipeline"
	"github.com/dgallion1/bookparse/internal/registry"
	"github.com/go-chi/chi/v5"
)

// errUploadTooLarge is returned by readUpload when the body exceeds the limit.
var errUploadTooLarge = errors.New("upload too large")

// handleUpload indexes one document synchronously. The body is either a
// multipart form with a "file" field or the raw document, named by ?name=.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	filename, data, err := s.readUpload(r)
	if err != nil {
		s.uploadError(w, err)
		return
	}

	res, err := s.indexer.Index(data, filename)
	if err != nil {
		s.indexError(w, err)
		return
	}

	code := http.StatusCreated
	if res.Duplicate {
		code = http.StatusOK
	}
	writeJSON(w, code, res)
}

func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	var (
		filename string
		body     io.Reader
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return "", nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("file is required: %w", err)
		}
		defer file.Close()
		filename = header.Filename
		body = file
	} else {
		filename = r.URL.Query().Get("name")
		if filename == "" {
			filename = "upload.txt"
		}
		body = r.Body
	}

	filename = sanitizeFilename(filename)
	if !parser.IsSupportedExtension(filename) && !parser.IsPlainText(filename) {
		return "", nil, fmt.Errorf("%w: %s", parser.ErrUnsupported, filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("%w: exceeds max size (%d bytes)", errUploadTooLarge, s.cfg.MaxUploadBytes)
	}
	return filename, data, nil
}

func (s *Server) uploadError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errUploadTooLarge), errors.As(err, &maxErr):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		jsonError(w, err.Error(), http.StatusBadRequest)
	}
}

// indexError maps construction failures onto status codes.
func (s *Server) indexError(w http.ResponseWriter, err error) {
	var encErr *book.InvalidEncodingError
	switch {
	case errors.As(err, &encErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"offset": encErr.Offset,
		})
	case errors.Is(err, book.ErrTooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, registry.ErrFull):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, book.ErrInvariantViolation):
		s.log.Error("index invariant violated", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	default:
		// Unsupported formats and parser failures are the client's input.
		jsonError(w, err.Error(), http.StatusBadRequest)
	}
}

// handleBatchUpload queues every "files" part for background indexing.
func (s *Server) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		s.uploadError(w, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) && !parser.IsPlainText(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		job := pipeline.NewJob(filename, data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"job_id":   job.ID,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
		})
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
