package parser

import (
	"strings"
	"testing"
)

func TestCSVParser_RowsBecomeParagraphs(t *testing.T) {
	input := "name,age,city\nAlice,30,Paris\nBob,,\"New\n York\"\nCarol,41,Oslo,extra\n"
	p := &CSVParser{}
	out, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"name: Alice, age: 30, city: Paris",
		"name: Bob, city: New York",
		"name: Carol, age: 41, city: Oslo, extra",
	}, "\n\n")
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	p := &CSVParser{}
	out, err := p.Parse(strings.NewReader("a,b\n"), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %q", out)
	}
}
