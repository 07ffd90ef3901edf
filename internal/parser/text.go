package parser

import (
	"fmt"
	"io"
)

// TextParser passes plain text through unchanged so offsets match the file.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, nil
}
