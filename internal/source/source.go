// Package source loads a document from disk as UTF-8 paragraph text.
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/dgallion1/bookparse/internal/parser"
)

// Source is the text of one file. Plain text is served straight from a
// read-only mapping; other formats are converted in memory.
type Source struct {
	Name string

	f    *os.File
	data mmap.MMap
	text []byte
}

// Open loads path. Plain-text files are memory-mapped; everything else goes
// through the parser registered for its extension.
func Open(path string, opts parser.Options) (*Source, error) {
	if parser.IsPlainText(path) {
		return openMapped(path)
	}
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	text, err := p.Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Source{Name: path, text: text}, nil
}

func openMapped(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	// Zero-length files cannot be mapped.
	if st.Size() == 0 {
		f.Close()
		return &Source{Name: path}, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &Source{Name: path, f: f, data: m}, nil
}

// Bytes returns the file text. A mapped slice is valid until Close and must
// not be modified.
func (s *Source) Bytes() []byte {
	if s.data != nil {
		return s.data
	}
	return s.text
}

// Mapped reports whether Bytes is backed by a file mapping.
func (s *Source) Mapped() bool {
	return s.data != nil
}

// Close unmaps the file and closes it.
func (s *Source) Close() error {
	var errs []error
	if s.data != nil {
		errs = append(errs, s.data.Unmap())
		s.data = nil
	}
	if s.f != nil {
		errs = append(errs, s.f.Close())
		s.f = nil
	}
	s.text = nil
	return errors.Join(errs...)
}
