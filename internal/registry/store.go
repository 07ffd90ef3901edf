// Package registry hands out opaque handles for books and owns their
// disposal.
package registry

import (
	"cmp"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dgallion1/bookparse/internal/book"
)

var (
	ErrUnknownHandle = errors.New("unknown handle")
	ErrFull          = errors.New("registry is full")
)

// Handle identifies a registered book. The zero Handle is never issued.
type Handle uint64

func (h Handle) String() string {
	return fmt.Sprintf("%d", uint64(h))
}

// Meta describes a registered book.
type Meta struct {
	Handle      Handle    `json:"handle"`
	Name        string    `json:"name"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsed    time.Time `json:"last_used"`
}

type entry struct {
	meta     Meta
	book     *book.Book
	refs     int
	detached bool // removed from the table, waiting for the last lease
}

// Lease is a scoped borrow of a book. The book stays valid until Release,
// even if the handle is disposed meanwhile.
type Lease struct {
	Book *book.Book
	Meta Meta

	once    sync.Once
	release func()
}

// Release ends the lease. Extra calls are no-ops.
func (l *Lease) Release() {
	l.once.Do(l.release)
}

// Store is a thread-safe handle table with idle TTL eviction.
type Store struct {
	mu      sync.Mutex
	entries map[Handle]*entry
	byHash  map[string]Handle
	next    Handle
	limit   int
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a store holding at most limit books (0 means no limit).
// Books idle longer than ttl are evicted by Cleanup; ttl 0 disables eviction.
func NewStore(limit int, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[Handle]*entry),
		byHash:  make(map[string]Handle),
		limit:   limit,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put registers b and transfers its ownership to the store.
func (s *Store) Put(b *book.Book, name, contentHash string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(b, name, contentHash)
}

// PutUnique is Put unless a book with contentHash is already registered, in
// which case b is left untouched and the existing handle is returned with
// existing set. The lookup and the insert happen under one lock.
func (s *Store) PutUnique(b *book.Book, name, contentHash string) (h Handle, existing bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contentHash != "" {
		if h, ok := s.byHash[contentHash]; ok {
			return h, true, nil
		}
	}
	h, err = s.putLocked(b, name, contentHash)
	return h, false, err
}

func (s *Store) putLocked(b *book.Book, name, contentHash string) (Handle, error) {
	if s.limit > 0 && len(s.entries) >= s.limit {
		return 0, ErrFull
	}
	s.next++
	h := s.next
	now := s.now()
	s.entries[h] = &entry{
		meta: Meta{
			Handle:      h,
			Name:        name,
			ContentHash: contentHash,
			CreatedAt:   now,
			LastUsed:    now,
		},
		book: b,
	}
	if contentHash != "" {
		s.byHash[contentHash] = h
	}
	return h, nil
}

// FindByHash returns the live handle registered with contentHash.
func (s *Store) FindByHash(contentHash string) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byHash[contentHash]
	return h, ok
}

// Acquire borrows the book behind h. Callers must Release the lease.
func (s *Store) Acquire(h Handle) (*Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	e.refs++
	e.meta.LastUsed = s.now()
	return &Lease{
		Book:    e.book,
		Meta:    e.meta,
		release: func() { s.release(e) },
	}, nil
}

func (s *Store) release(e *entry) {
	s.mu.Lock()
	e.refs--
	last := e.detached && e.refs == 0
	s.mu.Unlock()
	if last {
		e.book.Dispose()
	}
}

// Dispose removes h. The book is disposed now, or when its last lease is
// released.
func (s *Store) Dispose(h Handle) error {
	s.mu.Lock()
	e, ok := s.entries[h]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	now := s.detachLocked(h, e)
	s.mu.Unlock()
	if now {
		e.book.Dispose()
	}
	return nil
}

// detachLocked drops h from the table and reports whether the caller must
// dispose the book immediately.
func (s *Store) detachLocked(h Handle, e *entry) bool {
	delete(s.entries, h)
	if s.byHash[e.meta.ContentHash] == h {
		delete(s.byHash, e.meta.ContentHash)
	}
	e.detached = true
	return e.refs == 0
}

// Cleanup evicts books idle longer than the TTL and returns how many it
// removed. Books with live leases are never idle.
func (s *Store) Cleanup() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	now := s.now()
	var expired []*book.Book
	for h, e := range s.entries {
		if e.refs == 0 && now.Sub(e.meta.LastUsed) > s.ttl {
			s.detachLocked(h, e)
			expired = append(expired, e.book)
		}
	}
	s.mu.Unlock()
	for _, b := range expired {
		b.Dispose()
	}
	return len(expired)
}

// List returns metadata for every registered book, oldest first.
func (s *Store) List() []Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Meta, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.meta)
	}
	slices.SortFunc(out, func(a, b Meta) int { return cmp.Compare(a.Handle, b.Handle) })
	return out
}

// Len returns the number of registered books.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close disposes every book that has no live lease; leased books follow
// when released.
func (s *Store) Close() {
	s.mu.Lock()
	var idle []*book.Book
	for h, e := range s.entries {
		if s.detachLocked(h, e) {
			idle = append(idle, e.book)
		}
	}
	s.mu.Unlock()
	for _, b := range idle {
		b.Dispose()
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
