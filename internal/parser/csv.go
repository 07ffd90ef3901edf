package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Each data row becomes one paragraph of
// "header: value" pairs.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]byte, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var w paragraphWriter
	if len(records) == 0 {
		return w.Bytes(), nil
	}

	headers := records[0]
	for _, row := range records[1:] {
		var line strings.Builder
		for j, cell := range row {
			cell = collapseSpace(cell)
			if cell == "" {
				continue
			}
			if line.Len() > 0 {
				line.WriteString(", ")
			}
			if j < len(headers) && headers[j] != "" {
				line.WriteString(headers[j] + ": ")
			}
			line.WriteString(cell)
		}
		w.Paragraph(line.String())
	}
	return w.Bytes(), nil
}
