//go:build cgo

package main

/*
#include <stdint.h>

typedef unsigned int SentenceId;
typedef unsigned int ParagraphId;

typedef struct
{
    unsigned int bytes;
    unsigned int symbols;
} StringSize;

typedef struct
{
    unsigned int paragraphes;
    unsigned int sentences;
    StringSize size;
} BookInfo;

typedef struct
{
    ParagraphId index;
    SentenceId sentence_first;
    unsigned int sentences;
    StringSize size;
} ParagraphInfo;

typedef struct
{
    SentenceId index;
    unsigned int s_number;
    ParagraphId p_index;
    StringSize size;
} SentenceInfo;
*/
import "C"

import (
	"unsafe"

	"github.com/dgallion1/bookparse/internal/book"
	"github.com/dgallion1/bookparse/internal/registry"
)

// The input is copied during construction, so the caller may free p as
// soon as these return.
func input(p *C.uchar, n C.uint) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))
}

func output(p *C.uchar, n uint32) []byte {
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))
}

func cSize(s book.StringSize) C.StringSize {
	return C.StringSize{bytes: C.uint(s.Bytes), symbols: C.uint(s.Symbols)}
}

//export from_utf8
func from_utf8(p *C.uchar, n C.uint) C.uintptr_t {
	h, _ := open(input(p, n))
	return C.uintptr_t(h)
}

// from_utf8_checked also stores the offset of the first malformed byte in
// *offset, or -1 when the input was not rejected for its encoding.
//
//export from_utf8_checked
func from_utf8_checked(p *C.uchar, n C.uint, offset *C.int64_t) C.uintptr_t {
	h, off := open(input(p, n))
	if offset != nil {
		*offset = C.int64_t(off)
	}
	return C.uintptr_t(h)
}

//export dispose
func dispose(b C.uintptr_t) {
	closeBook(registry.Handle(b))
}

//export book_info
func book_info(b C.uintptr_t) C.BookInfo {
	info := bookInfo(registry.Handle(b))
	return C.BookInfo{
		paragraphes: C.uint(info.Paragraphs),
		sentences:   C.uint(info.Sentences),
		size:        cSize(info.Size),
	}
}

//export paragraph_info
func paragraph_info(b C.uintptr_t, id C.ParagraphId) C.ParagraphInfo {
	info := paragraphInfo(registry.Handle(b), uint32(id))
	return C.ParagraphInfo{
		index:          C.ParagraphId(info.Index),
		sentence_first: C.SentenceId(info.SentenceFirst),
		sentences:      C.uint(info.Sentences),
		size:           cSize(info.Size),
	}
}

// paragraph_text writes the paragraph into buff, which must hold at least
// paragraph_info(b, id).size.bytes bytes. Unknown ids write nothing.
//
//export paragraph_text
func paragraph_text(b C.uintptr_t, id C.ParagraphId, buff *C.uchar) {
	h := registry.Handle(b)
	info := paragraphInfo(h, uint32(id))
	if info.Index == missing {
		return
	}
	paragraphText(h, uint32(id), output(buff, info.Size.Bytes))
}

//export sentence_info
func sentence_info(b C.uintptr_t, id C.SentenceId) C.SentenceInfo {
	info := sentenceInfo(registry.Handle(b), uint32(id))
	return C.SentenceInfo{
		index:    C.SentenceId(info.Index),
		s_number: C.uint(info.OrdinalInParagraph),
		p_index:  C.ParagraphId(info.ParagraphIndex),
		size:     cSize(info.Size),
	}
}

//export sentence_text
func sentence_text(b C.uintptr_t, id C.SentenceId, buff *C.uchar) {
	h := registry.Handle(b)
	info := sentenceInfo(h, uint32(id))
	if info.Index == missing {
		return
	}
	sentenceText(h, uint32(id), output(buff, info.Size.Bytes))
}
