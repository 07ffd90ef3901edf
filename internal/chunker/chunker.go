// Package chunker packs the sentences of a book into windows of roughly
// equal token count for downstream consumers.
package chunker

import (
	"strings"

	"github.com/dgallion1/bookparse/internal/book"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Tokens of trailing sentences repeated at the start of the next chunk.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
	}
}

// Chunk is a run of consecutive sentences. It never splits a sentence.
type Chunk struct {
	Index          int    `json:"index"`
	SentenceFirst  uint32 `json:"sentence_first"`
	Sentences      uint32 `json:"sentences"`
	ParagraphFirst uint32 `json:"paragraph_first"`
	ParagraphLast  uint32 `json:"paragraph_last"`
	Tokens         int    `json:"tokens"`
	Text           string `json:"text"`
}

type sentence struct {
	id        uint32
	paragraph uint32
	text      string
	tokens    int
}

type packer struct {
	cfg    Config
	cur    []sentence
	tokens int
	fresh  int // sentences in cur not carried over as overlap
	out    []Chunk
}

// Split chunks b. Whole paragraphs are kept together while they fit;
// larger paragraphs are split between sentences.
func Split(b *book.Book, cfg Config) []Chunk {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 0
	}

	p := &packer{cfg: cfg}
	for para := range b.Paragraphs() {
		var sents []sentence
		paraTokens := 0
		for s := range para.Sentences() {
			text := s.Text()
			st := sentence{id: s.Info.Index, paragraph: para.Info.Index, text: text, tokens: EstimateTokens(text)}
			sents = append(sents, st)
			paraTokens += st.tokens
		}

		// Prefer breaking at the paragraph edge.
		if p.fresh > 0 && p.tokens+paraTokens > cfg.ChunkSize {
			p.flush(true)
		}
		for _, s := range sents {
			if p.fresh > 0 && p.tokens+s.tokens > cfg.ChunkSize {
				p.flush(true)
			}
			p.add(s)
		}
	}
	if p.fresh > 0 {
		p.flush(false)
	}
	return p.out
}

func (p *packer) add(s sentence) {
	p.cur = append(p.cur, s)
	p.tokens += s.tokens
	p.fresh++
}

func (p *packer) flush(overlap bool) {
	first, last := p.cur[0], p.cur[len(p.cur)-1]
	p.out = append(p.out, Chunk{
		Index:          len(p.out),
		SentenceFirst:  first.id,
		Sentences:      last.id - first.id + 1,
		ParagraphFirst: first.paragraph,
		ParagraphLast:  last.paragraph,
		Tokens:         p.tokens,
		Text:           joinSentences(p.cur),
	})

	var keep []sentence
	if overlap {
		keep = tail(p.cur, p.cfg.ChunkOverlap)
	}
	p.cur = append(p.cur[:0:0], keep...)
	p.tokens = 0
	for _, s := range keep {
		p.tokens += s.tokens
	}
	p.fresh = 0
}

// tail returns the longest suffix of sents, shorter than sents itself,
// whose tokens fit within budget.
func tail(sents []sentence, budget int) []sentence {
	n, total := 0, 0
	for i := len(sents) - 1; i > 0; i-- {
		if total+sents[i].tokens > budget {
			break
		}
		total += sents[i].tokens
		n++
	}
	return sents[len(sents)-n:]
}

// joinSentences separates sentences with a space and paragraphs with a
// blank line.
func joinSentences(sents []sentence) string {
	var sb strings.Builder
	for i, s := range sents {
		if i > 0 {
			if s.paragraph != sents[i-1].paragraph {
				sb.WriteString("\n\n")
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(s.text)
	}
	return sb.String()
}
