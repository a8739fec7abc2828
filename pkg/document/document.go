// Package document handles line-level structure of a Diregram markdown
// document: newline normalization, fence tracking, and the tree/metadata
// region split.
package document

import "strings"

// FenceMarker opens and closes fenced code blocks. Fence state toggles on
// any line whose trimmed text starts with it, matching the importer.
const FenceMarker = "```"

// Separator is the bare line that splits the tree region from the metadata
// region. Only a separator outside a fence counts.
const Separator = "---"

// Document is one normalized Diregram document. It is immutable after
// construction; a verification run owns exactly one.
type Document struct {
	// Text is the full document with newlines normalized to \n.
	Text string
	// Lines is Text split on \n, in order.
	Lines []string

	sep int // separator line index, -1 if absent
}

// New normalizes raw document text (CRLF and lone CR become LF) and splits
// it into lines.
func New(raw string) *Document {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	d := &Document{
		Text:  text,
		Lines: strings.Split(text, "\n"),
	}
	d.sep = separatorIndex(d.Lines)
	return d
}

// IsFenceLine reports whether a line toggles fence state.
func IsFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FenceMarker)
}

// separatorIndex returns the index of the first bare separator line outside
// any fence, or -1. Fence-interior separators are part of a code sample and
// never split the document.
func separatorIndex(lines []string) int {
	inFence := false
	for i, line := range lines {
		if IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if !inFence && strings.TrimSpace(line) == Separator {
			return i
		}
	}
	return -1
}

// TreeLines returns the lines of the tree region: everything before the
// separator, or the whole document when no separator exists. A missing
// separator is not an error.
func (d *Document) TreeLines() []string {
	if d.sep < 0 {
		return d.Lines
	}
	return d.Lines[:d.sep]
}

// HasSeparator reports whether the document contains a region separator.
func (d *Document) HasSeparator() bool { return d.sep >= 0 }

// UnclosedFence scans the whole document for an unterminated fenced block.
// It returns the 1-based line number of the fence left open at end of input
// and true when one exists.
func (d *Document) UnclosedFence() (int, bool) {
	inFence := false
	start := 0
	for i, line := range d.Lines {
		if IsFenceLine(line) {
			if !inFence {
				inFence = true
				start = i + 1
			} else {
				inFence = false
			}
		}
	}
	if inFence {
		return start, true
	}
	return 0, false
}
