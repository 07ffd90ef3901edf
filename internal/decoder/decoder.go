package decoder

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidEncoding is matched by every *InvalidEncodingError.
var ErrInvalidEncoding = errors.New("invalid utf-8 encoding")

// InvalidEncodingError reports the offset of the first byte that does not
// start a well-formed UTF-8 sequence.
type InvalidEncodingError struct {
	Offset int
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid utf-8 encoding at byte offset %d", e.Offset)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// Symbol is one decoded codepoint and the bytes it occupies in the source.
type Symbol struct {
	Rune   rune
	Offset int
	Size   int
}

// End returns the offset just past the symbol.
func (s Symbol) End() int {
	return s.Offset + s.Size
}

// Decoder walks a byte slice one codepoint at a time. It stops at the first
// malformed sequence instead of substituting U+FFFD, so every offset it hands
// out refers to the caller's bytes exactly.
type Decoder struct {
	src   []byte
	pos   int
	count int
	cur   Symbol
	err   error
}

// New returns a decoder positioned before the first codepoint of src.
func New(src []byte) *Decoder {
	return &Decoder{src: src}
}

// Next advances to the next codepoint. It returns false at the end of input
// or on malformed input; Err distinguishes the two.
func (d *Decoder) Next() bool {
	if d.err != nil || d.pos >= len(d.src) {
		return false
	}
	b := d.src[d.pos]
	if b < utf8.RuneSelf {
		d.cur = Symbol{Rune: rune(b), Offset: d.pos, Size: 1}
		d.pos++
		d.count++
		return true
	}
	r, size := utf8.DecodeRune(d.src[d.pos:])
	if r == utf8.RuneError && size <= 1 {
		d.err = &InvalidEncodingError{Offset: d.pos}
		return false
	}
	d.cur = Symbol{Rune: r, Offset: d.pos, Size: size}
	d.pos += size
	d.count++
	return true
}

// Symbol returns the codepoint produced by the last successful Next.
func (d *Decoder) Symbol() Symbol {
	return d.cur
}

// Count returns how many codepoints have been produced so far.
func (d *Decoder) Count() int {
	return d.count
}

// Err returns the decoding error that stopped iteration, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Validate checks the whole buffer and reports the first malformed offset.
func Validate(src []byte) error {
	if utf8.Valid(src) {
		return nil
	}
	d := New(src)
	for d.Next() {
	}
	return d.Err()
}
