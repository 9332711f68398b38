package extract

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Delimiters is a pair of markers surrounding a code block.
type Delimiters struct {
	// Start marks the beginning of a code block.
	Start string

	// End marks the end of a code block.
	End string
}

// Markdown are the conventional triple-backtick fence markers.
var Markdown = Delimiters{Start: "```", End: "```"}

// Blocks returns the ordered sequence of substrings strictly between
// each matched delimiter pair in text, preserving document order.
//
// Marker matching happens on an NFC-normalized view of the text so
// that visually identical markers with different codepoint sequences
// still match, but each returned block is sliced byte for byte from
// the original text. A start marker without a matching end marker is
// ignored. Zero matches yields a nil slice, not an error.
func Blocks(text string, d Delimiters) []string {
	if d.Start == "" || d.End == "" {
		return nil
	}
	view := normalize(text)
	start := norm.NFC.String(d.Start)
	end := norm.NFC.String(d.End)

	var blocks []string
	pos := 0
	for {
		i := strings.Index(view.text[pos:], start)
		if i < 0 {
			break
		}
		i += pos
		j := strings.Index(view.text[i+len(start):], end)
		if j < 0 {
			break
		}
		j += i + len(start)
		blocks = append(blocks, text[view.source(i+len(start)):view.source(j)])
		pos = j + len(end)
	}
	return blocks
}

// normView pairs an NFC-normalized string with the boundary offsets
// needed to map positions in it back to the text it was built from.
type normView struct {
	text string
	// off[k] in the normalized text corresponds to src[k] in the
	// original. Both are ascending and share a final entry at the
	// respective string lengths.
	off []int
	src []int
}

// normalize builds the NFC view of s segment by segment, recording the
// original offset of every normalization boundary.
func normalize(s string) normView {
	var it norm.Iter
	it.InitString(norm.NFC, s)

	var b strings.Builder
	v := normView{off: []int{0}, src: []int{0}}
	for !it.Done() {
		b.Write(it.Next())
		v.off = append(v.off, b.Len())
		v.src = append(v.src, it.Pos())
	}
	v.text = b.String()
	return v
}

// source maps an offset in the normalized text to the original offset
// of the nearest boundary at or after it.
func (v normView) source(off int) int {
	k := sort.SearchInts(v.off, off)
	return v.src[k]
}

// FormatFault composes the short, deterministic fault summary recorded
// in place of console output when a unit raises. detail should be the
// most specific message available; only its first non-empty line is
// kept so the summary stays one line regardless of how verbose the
// underlying failure was.
func FormatFault(unitName, detail string) string {
	line := firstLine(detail)
	if line == "" {
		line = "unknown fault"
	}
	return "Error in " + unitName + ": " + line
}

// firstLine returns the first non-empty, trimmed line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
