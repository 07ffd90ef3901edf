package book

import (
	"errors"
	"fmt"

	"github.com/dgallion1/bookparse/internal/decoder"
)

var (
	// ErrOutOfRange is matched by every *OutOfRangeError.
	ErrOutOfRange = errors.New("identifier out of range")

	// ErrTooLarge means the source does not fit the 32-bit size fields.
	ErrTooLarge = errors.New("source exceeds 4 GiB")

	// ErrInvariantViolation signals a segmentation bug caught before a book
	// was published.
	ErrInvariantViolation = errors.New("index invariant violated")

	// ErrDisposed is the panic value for use of a disposed book.
	ErrDisposed = errors.New("book is disposed")

	// ErrInvalidEncoding is matched by every *InvalidEncodingError.
	ErrInvalidEncoding = decoder.ErrInvalidEncoding
)

// InvalidEncodingError carries the byte offset of the first malformed sequence.
type InvalidEncodingError = decoder.InvalidEncodingError

// OutOfRangeError reports an identifier at or beyond the unit count.
type OutOfRangeError struct {
	Kind  string // "paragraph" or "sentence"
	ID    uint32
	Count uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (count %d)", e.Kind, e.ID, e.Count)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
