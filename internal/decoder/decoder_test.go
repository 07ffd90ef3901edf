package decoder

import (
	"errors"
	"testing"
)

func TestDecoder_ASCIIAndMultibyte(t *testing.T) {
	src := []byte("aЖ€😀")
	d := New(src)

	want := []Symbol{
		{Rune: 'a', Offset: 0, Size: 1},
		{Rune: 'Ж', Offset: 1, Size: 2},
		{Rune: '€', Offset: 3, Size: 3},
		{Rune: '😀', Offset: 6, Size: 4},
	}
	for i, w := range want {
		if !d.Next() {
			t.Fatalf("symbol %d: unexpected end, err=%v", i, d.Err())
		}
		if got := d.Symbol(); got != w {
			t.Errorf("symbol %d: expected %+v, got %+v", i, w, got)
		}
	}
	if d.Next() {
		t.Fatal("expected end of input")
	}
	if d.Err() != nil {
		t.Errorf("expected no error, got %v", d.Err())
	}
	if d.Count() != 4 {
		t.Errorf("expected 4 symbols, got %d", d.Count())
	}
	if d.Symbol().End() != len(src) {
		t.Errorf("expected last symbol to end at %d, got %d", len(src), d.Symbol().End())
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	d := New(nil)
	if d.Next() {
		t.Fatal("expected no symbols")
	}
	if d.Err() != nil {
		t.Errorf("expected no error, got %v", d.Err())
	}
}

func TestDecoder_InvalidSequences(t *testing.T) {
	tests := []struct {
		name   string
		src    []byte
		offset int
	}{
		{"lone 0xFF", []byte{0xFF}, 0},
		{"after ascii", []byte("ab\xFEcd"), 2},
		{"truncated", []byte("ok\xE2\x82"), 2},
		{"stray continuation", []byte("x\x80"), 1},
		{"overlong slash", []byte{'a', 0xC0, 0xAF}, 1},
		{"surrogate half", []byte{0xED, 0xA0, 0x80}, 0},
		{"above max codepoint", []byte{0xF4, 0x90, 0x80, 0x80}, 0},
		{"after multibyte", []byte("Ж\xC1"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.src)
			for d.Next() {
			}
			err := d.Err()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("expected ErrInvalidEncoding, got %v", err)
			}
			var encErr *InvalidEncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("expected *InvalidEncodingError, got %T", err)
			}
			if encErr.Offset != tt.offset {
				t.Errorf("expected offset %d, got %d", tt.offset, encErr.Offset)
			}
			if d.Next() {
				t.Error("decoder must not resume after an error")
			}
		})
	}
}

func TestDecoder_ReplacementCharacterIsValid(t *testing.T) {
	d := New([]byte("�"))
	if !d.Next() {
		t.Fatalf("expected a symbol, err=%v", d.Err())
	}
	if d.Symbol().Size != 3 {
		t.Errorf("expected size 3, got %d", d.Symbol().Size)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]byte("Привет, мир")); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	err := Validate([]byte("Привет\xFF"))
	var encErr *InvalidEncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *InvalidEncodingError, got %v", err)
	}
	if encErr.Offset != 12 {
		t.Errorf("expected offset 12, got %d", encErr.Offset)
	}
}
