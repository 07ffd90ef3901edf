package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/metrics"
	"github.com/dgallion1/bookparse/internal/parser"
	"github.com/dgallion1/bookparse/internal/registry"
	"github.com/dgallion1/bookparse/internal/segment"
)

// IndexerConfig holds the knobs shared by synchronous and queued ingestion.
type IndexerConfig struct {
	Segment segment.Config
	Parser  parser.Options
	// Dedup returns the existing handle when identical text is uploaded again.
	Dedup bool
}

// Indexer turns uploaded bytes into a registered book.
type Indexer struct {
	books *registry.Store
	stats *metrics.BuildStats
	cfg   IndexerConfig
	log   *slog.Logger
}

func NewIndexer(books *registry.Store, stats *metrics.BuildStats, cfg IndexerConfig, log *slog.Logger) *Indexer {
	return &Indexer{books: books, stats: stats, cfg: cfg, log: log}
}

// Result describes the book an upload produced.
type Result struct {
	Handle      registry.Handle `json:"handle"`
	Name        string          `json:"name"`
	ContentHash string          `json:"content_hash"`
	Info        book.BookInfo   `json:"info"`
	Duplicate   bool            `json:"duplicate"`
}

// Books returns the registry results are stored in.
func (ix *Indexer) Books() *registry.Store {
	return ix.books
}

// Stats returns construction statistics.
func (ix *Indexer) Stats() *metrics.BuildStats {
	return ix.stats
}

// Convert runs the format parser for filename over data.
func (ix *Indexer) Convert(data []byte, filename string) ([]byte, error) {
	p, err := parser.ForFile(filename, ix.cfg.Parser)
	if err != nil {
		return nil, err
	}
	text, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return text, nil
}

// Build indexes text, recording the attempt in the construction stats.
func (ix *Indexer) Build(text []byte) (*book.Book, error) {
	start := time.Now()
	b, err := book.Build(text, ix.cfg.Segment)
	ix.stats.Record(time.Since(start), len(text), err)
	return b, err
}

// Register stores b under name, or returns the handle of an identical book
// already registered when dedup is on. b is disposed in that case.
func (ix *Indexer) Register(b *book.Book, text []byte, name string) (Result, error) {
	hash := registry.ContentHashHex(text)
	if !ix.cfg.Dedup {
		info := b.Info()
		h, err := ix.books.Put(b, name, hash)
		if err != nil {
			return Result{}, err
		}
		return Result{Handle: h, Name: name, ContentHash: hash, Info: info}, nil
	}

	for {
		info := b.Info()
		h, existing, err := ix.books.PutUnique(b, name, hash)
		if err != nil {
			return Result{}, err
		}
		if !existing {
			return Result{Handle: h, Name: name, ContentHash: hash, Info: info}, nil
		}
		if res, ok := ix.describe(h, hash); ok {
			b.Dispose()
			return res, nil
		}
		// The original was disposed between the two calls; try again.
	}
}

func (ix *Indexer) describe(h registry.Handle, hash string) (Result, bool) {
	lease, err := ix.books.Acquire(h)
	if err != nil {
		return Result{}, false
	}
	defer lease.Release()
	return Result{
		Handle:      h,
		Name:        lease.Meta.Name,
		ContentHash: hash,
		Info:        lease.Book.Info(),
		Duplicate:   true,
	}, true
}

// Index converts, builds and registers one upload.
func (ix *Indexer) Index(data []byte, filename string) (Result, error) {
	text, err := ix.Convert(data, filename)
	if err != nil {
		return Result{}, err
	}
	b, err := ix.Build(text)
	if err != nil {
		return Result{}, err
	}
	res, err := ix.Register(b, text, filename)
	if err != nil {
		b.Dispose()
		return Result{}, err
	}
	ix.log.Info("indexed book",
		"handle", res.Handle,
		"name", filename,
		"paragraphs", res.Info.Paragraphs,
		"sentences", res.Info.Sentences,
		"bytes", res.Info.Size.Bytes,
		"duplicate", res.Duplicate,
	)
	return res, nil
}
