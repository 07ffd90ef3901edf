// Command libbookparse builds the C shared library:
//
//	go build -buildmode=c-shared -o libbookparse.so ./cmd/libbookparse
//
// Books are addressed by registry handles; 0 is never a valid book.
package main

import (
	"errors"
	"math"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/registry"
)

// missing marks the index of an info struct for an id that does not exist.
const missing = math.MaxUint32

var books = registry.NewStore(0, 0)

func main() {}

// open indexes src and registers the book. On failure the handle is 0 and
// offset holds the first malformed byte, or -1 for other errors.
func open(src []byte) (h registry.Handle, offset int64) {
	b, err := book.FromUTF8(src)
	if err != nil {
		var encErr *book.InvalidEncodingError
		if errors.As(err, &encErr) {
			return 0, int64(encErr.Offset)
		}
		return 0, -1
	}
	h, err = books.Put(b, "", "")
	if err != nil {
		b.Dispose()
		return 0, -1
	}
	return h, -1
}

func closeBook(h registry.Handle) {
	// Disposing an unknown or already disposed handle violates the caller's
	// contract; with no error channel in the ABI it is ignored.
	_ = books.Dispose(h)
}

func bookInfo(h registry.Handle) book.BookInfo {
	lease, err := books.Acquire(h)
	if err != nil {
		return book.BookInfo{}
	}
	defer lease.Release()
	return lease.Book.Info()
}

func paragraphInfo(h registry.Handle, id uint32) book.ParagraphInfo {
	lease, err := books.Acquire(h)
	if err != nil {
		return book.ParagraphInfo{Index: missing}
	}
	defer lease.Release()
	info, err := lease.Book.ParagraphInfo(book.ParagraphID(id))
	if err != nil {
		return book.ParagraphInfo{Index: missing}
	}
	return info
}

func sentenceInfo(h registry.Handle, id uint32) book.SentenceInfo {
	lease, err := books.Acquire(h)
	if err != nil {
		return book.SentenceInfo{Index: missing}
	}
	defer lease.Release()
	info, err := lease.Book.SentenceInfo(book.SentenceID(id))
	if err != nil {
		return book.SentenceInfo{Index: missing}
	}
	return info
}

// paragraphText copies the paragraph into dst and returns the byte count,
// or -1 if the handle or id is unknown or dst is too small.
func paragraphText(h registry.Handle, id uint32, dst []byte) int {
	lease, err := books.Acquire(h)
	if err != nil {
		return -1
	}
	defer lease.Release()
	n, err := lease.Book.ParagraphText(book.ParagraphID(id), dst)
	if err != nil {
		return -1
	}
	return n
}

func sentenceText(h registry.Handle, id uint32, dst []byte) int {
	lease, err := books.Acquire(h)
	if err != nil {
		return -1
	}
	defer lease.Release()
	n, err := lease.Book.SentenceText(book.SentenceID(id), dst)
	if err != nil {
		return -1
	}
	return n
}
