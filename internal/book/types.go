package book

// ParagraphID is a dense 0-based paragraph index in document order.
type ParagraphID uint32

// SentenceID is a dense 0-based sentence index over the whole book.
type SentenceID uint32

// StringSize is the length of a unit in bytes and in codepoints.
type StringSize struct {
	Bytes   uint32 `json:"bytes"`
	Symbols uint32 `json:"symbols"`
}

// BookInfo summarises a whole book. Size covers the entire source buffer.
type BookInfo struct {
	Paragraphs uint32     `json:"paragraphs"`
	Sentences  uint32     `json:"sentences"`
	Size       StringSize `json:"size"`
}

// ParagraphInfo describes one paragraph. Its sentences are the contiguous
// range [SentenceFirst, SentenceFirst+Sentences).
type ParagraphInfo struct {
	Index         uint32     `json:"index"`
	SentenceFirst uint32     `json:"sentence_first"`
	Sentences     uint32     `json:"sentences"`
	Size          StringSize `json:"size"`
}

// SentenceInfo describes one sentence and its position in its paragraph.
type SentenceInfo struct {
	Index              uint32     `json:"index"`
	OrdinalInParagraph uint32     `json:"ordinal_in_paragraph"`
	ParagraphIndex     uint32     `json:"paragraph_index"`
	Size               StringSize `json:"size"`
}

// State is the lifecycle stage of a Book.
type State int32

const (
	StateConstructing State = iota
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// span is a stored byte range plus its size.
type span struct {
	start uint32
	size  StringSize
}

func (s span) end() uint32 {
	return s.start + s.size.Bytes
}

type paragraphRecord struct {
	span
	sentenceFirst uint32
	sentences     uint32
}

type sentenceRecord struct {
	span
	paragraph uint32
	ordinal   uint32
}
