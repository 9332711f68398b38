package extract

import (
	"reflect"
	"testing"
)

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		d    Delimiters
		want []string
	}{
		{
			name: "no blocks",
			text: "plain prose with no code at all",
			d:    Markdown,
			want: nil,
		},
		{
			name: "single block",
			text: "before ```x = 1 + 1``` after",
			d:    Markdown,
			want: []string{"x = 1 + 1"},
		},
		{
			name: "two blocks in order",
			text: "Result: ```x = 1 + 1``` and ```error('boom')```",
			d:    Markdown,
			want: []string{"x = 1 + 1", "error('boom')"},
		},
		{
			name: "unterminated trailing start marker",
			text: "```done``` and ```dangling",
			d:    Markdown,
			want: []string{"done"},
		},
		{
			name: "asymmetric markers",
			text: "<code>a</code> text <code>b</code>",
			d:    Delimiters{Start: "<code>", End: "</code>"},
			want: []string{"a", "b"},
		},
		{
			name: "multiline block preserved verbatim",
			text: "```line1\nline2\n```",
			d:    Markdown,
			want: []string{"line1\nline2\n"},
		},
		{
			name: "empty block",
			text: "``````",
			d:    Markdown,
			want: []string{""},
		},
		{
			name: "empty markers",
			text: "anything",
			d:    Delimiters{},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blocks(tt.text, tt.d)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Blocks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlocks_MatchesNormalizedMarkers(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9, so the
	// surrounding prose must not keep the markers from matching.
	decomposed := "pre\u0301 ```ok``` post"
	got := Blocks(decomposed, Markdown)
	if len(got) != 1 || got[0] != "ok" {
		t.Fatalf("expected one block %q, got %q", "ok", got)
	}
}

func TestBlocks_SlicesVerbatimBytes(t *testing.T) {
	// The block carries a decomposed sequence; the extracted text must
	// keep the original bytes, not the composed form.
	body := "s = 'e\u0301'\n"
	text := "before ```" + body + "``` after"
	got := Blocks(text, Markdown)
	if len(got) != 1 {
		t.Fatalf("expected one block, got %q", got)
	}
	if got[0] != body {
		t.Errorf("block = %q, want the original bytes %q", got[0], body)
	}
	if got[0] == "s = '\u00e9'\n" {
		t.Error("block was normalized instead of sliced from the input")
	}
}

func TestFormatFault(t *testing.T) {
	tests := []struct {
		name   string
		unit   string
		detail string
		want   string
	}{
		{
			name:   "single line detail",
			unit:   "Test2_20260831T120000-ab12cd34",
			detail: "boom",
			want:   "Error in Test2_20260831T120000-ab12cd34: boom",
		},
		{
			name:   "multiline detail keeps first non-empty line",
			unit:   "Test1_x",
			detail: "\n  NameError: name 'y' is not defined\ngarbage",
			want:   "Error in Test1_x: NameError: name 'y' is not defined",
		},
		{
			name:   "empty detail",
			unit:   "Test1_x",
			detail: "",
			want:   "Error in Test1_x: unknown fault",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFault(tt.unit, tt.detail); got != tt.want {
				t.Errorf("FormatFault() = %q, want %q", got, tt.want)
			}
		})
	}
}
