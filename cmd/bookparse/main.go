// Command bookparse indexes a document and dumps its paragraphs and
// sentences.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/config"
	"github.com/dgallion1/bookparse/internal/parser"
	"github.com/dgallion1/bookparse/internal/report"
	"github.com/dgallion1/bookparse/internal/segment"
	"github.com/dgallion1/bookparse/internal/source"
)

type options struct {
	source    string
	output    string
	pretty    bool
	format    report.Format
	abbrevs   []string
	pdftotext bool
	logLevel  slog.Level
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "bookparse:", err)
		return 2
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.logLevel}))

	if err := parseBook(opts, stdout, log); err != nil {
		log.Error("parse failed", "source", opts.source, "error", err)
		return 1
	}
	return 0
}

// parseArgs accepts flags before or after the source path.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var (
		opts   options
		format string
		abbrev string
		level  string
	)
	fs := flag.NewFlagSet("bookparse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bookparse [flags] <source>")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "output", "", "path to save parsed text (default stdout)")
	fs.StringVar(&opts.output, "o", "", "shorthand for -output")
	fs.BoolVar(&opts.pretty, "pretty-print", false, "pretty print output")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	fs.StringVar(&abbrev, "abbrev", "", "comma-separated extra abbreviations")
	fs.BoolVar(&opts.pdftotext, "pdftotext", true, "fall back to pdftotext for unreadable PDFs")
	fs.StringVar(&level, "log-level", "warn", "log level: debug, info, warn or error")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return options{}, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	if len(positional) != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("expected one source file, got %d", len(positional))
	}
	opts.source = positional[0]

	var err error
	if opts.format, err = report.ParseFormat(format); err != nil {
		return options{}, err
	}
	if opts.logLevel, err = config.ParseLevel(level); err != nil {
		return options{}, err
	}
	for a := range strings.SplitSeq(abbrev, ",") {
		if a = strings.TrimSpace(a); a != "" {
			opts.abbrevs = append(opts.abbrevs, a)
		}
	}
	return opts, nil
}

func parseBook(opts options, stdout io.Writer, log *slog.Logger) (err error) {
	src, err := source.Open(opts.source, parser.Options{PDFFallbackPdftotext: opts.pdftotext})
	if err != nil {
		return err
	}
	defer src.Close()
	log.Debug("loaded source", "source", opts.source, "bytes", len(src.Bytes()), "mapped", src.Mapped())

	b, err := book.Build(src.Bytes(), segment.Config{ExtraAbbreviations: opts.abbrevs})
	if err != nil {
		return err
	}
	defer b.Dispose()

	info := b.Info()
	fmt.Fprintln(stdout, report.Summary(opts.source, info))
	log.Info("indexed book", "paragraphs", info.Paragraphs, "sentences", info.Sentences)

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return report.Write(w, b, report.Options{Format: opts.format, Pretty: opts.pretty})
}
