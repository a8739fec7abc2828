// Package markers extracts the inline HTML-comment markers and literals a
// Diregram tree line may carry. The fixed marker grammar is recognized by a
// small per-line tokenizer: a marker is an HTML comment whose content, after
// optional whitespace, starts with a known keyword, and whose body runs up to
// the first "-->" terminator without crossing a bare '>'.
package markers

import (
	"strings"
	"unicode"
)

// Inline literals understood by the importer.
const (
	FlowLiteral    = "#flow#"
	FlowtabLiteral = "#flowtab#"
	CommonLiteral  = "#common#"
)

// Marker keywords.
const (
	kwTags    = "tags:"
	kwExpid   = "expid:"
	kwDo      = "do:"
	kwDoattrs = "doattrs:"
)

// maxAttrIDLen is the sanitization budget for doattrs ids, mirroring the
// importer's per-attribute limit.
const maxAttrIDLen = 64

// LineMarkers holds everything extracted from one tree line.
type LineMarkers struct {
	// TagIDs are the sanitized, de-duplicated (order-preserving) ids from a
	// tags: marker.
	TagIDs []string
	// IsFlow reports the presence of the flow literal anywhere on the line.
	IsFlow bool
	// HasExpid reports the presence of an expid: marker with a digit-only
	// value. The value itself is not validated further.
	HasExpid bool
	// DoID is the trimmed body of the first do: marker on the line; if a
	// line carries several, only the first match is honored (accepted
	// behavior, asymmetric with the last-wins metadata block policy).
	DoID string
	// DoAttrIDs are the sanitized, length-capped, de-duplicated ids from a
	// doattrs: marker.
	DoAttrIDs []string
	// Title is the normalized prose of the line, used only for the
	// actor-prefix check.
	Title string
}

// Extract tokenizes one tree line.
func Extract(line string) LineMarkers {
	return LineMarkers{
		TagIDs:    TagIDs(line),
		IsFlow:    strings.Contains(line, FlowLiteral),
		HasExpid:  hasExpid(line),
		DoID:      doID(line),
		DoAttrIDs: idList(line, kwDoattrs, maxAttrIDLen),
		Title:     NormalizedTitle(line),
	}
}

// TagIDs extracts just the tags: marker ids from a line. Used on its own by
// the swimlane checker, which inspects lines outside the tree region.
func TagIDs(line string) []string {
	return idList(line, kwTags, 0)
}

// NormalizedTitle strips indentation, HTML comments and the known inline
// literals from a line and collapses whitespace runs, yielding the prose
// used for the actor-prefix check.
func NormalizedTitle(line string) string {
	s := strings.TrimLeftFunc(line, unicode.IsSpace)
	s = stripComments(s)
	s = strings.ReplaceAll(s, FlowtabLiteral, " ")
	s = strings.ReplaceAll(s, FlowLiteral, " ")
	s = strings.ReplaceAll(s, CommonLiteral, " ")
	return strings.Join(strings.Fields(s), " ")
}

// stripComments removes every complete <!-- ... --> span, shortest match
// first. An unterminated comment is left as-is.
func stripComments(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "<!--")
		if i < 0 {
			b.WriteString(s)
			break
		}
		j := strings.Index(s[i+4:], "-->")
		if j < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i+4+j+3:]
	}
	return b.String()
}

// findComment locates the first comment on the line that opens with keyword
// and whose body passes valid. Failed candidates do not stop the scan; the
// tokenizer keeps looking at later comment openers, like a regex search
// would.
func findComment(line, keyword string, valid func(string) bool) (string, bool) {
	from := 0
	for {
		i := strings.Index(line[from:], "<!--")
		if i < 0 {
			return "", false
		}
		i += from
		j := i + len("<!--")
		for j < len(line) && isSpace(line[j]) {
			j++
		}
		if strings.HasPrefix(line[j:], keyword) {
			body, ok := commentClose(line, j+len(keyword))
			if ok && valid(body) {
				return body, true
			}
		}
		from = i + 1
	}
}

// commentClose returns the marker body starting at from: the text up to the
// first "-->" terminator, provided no bare '>' occurs before it.
func commentClose(line string, from int) (string, bool) {
	p := strings.IndexByte(line[from:], '>')
	if p < 0 {
		return "", false
	}
	p += from
	if p >= from+2 && line[p-2:p+1] == "-->" {
		return line[from : p-2], true
	}
	return "", false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func anyBody(string) bool { return true }

// doID returns the trimmed body of the first do: marker, or "". The body
// must be non-empty before trimming for the marker to count.
func doID(line string) string {
	body, ok := findComment(line, kwDo, func(b string) bool { return b != "" })
	if !ok {
		return ""
	}
	return strings.TrimSpace(body)
}

// hasExpid reports an expid: marker whose body is one or more digits,
// optionally followed by whitespace.
func hasExpid(line string) bool {
	_, ok := findComment(line, kwExpid, func(b string) bool {
		n := 0
		for n < len(b) && b[n] >= '0' && b[n] <= '9' {
			n++
		}
		if n == 0 {
			return false
		}
		for _, c := range []byte(b[n:]) {
			if !isSpace(c) {
				return false
			}
		}
		return true
	})
	return ok
}

// idList extracts a comma-separated id list marker, sanitizing each id and
// de-duplicating while preserving first-seen order. maxLen > 0 additionally
// caps each id to that many runes after sanitization.
func idList(line, keyword string, maxLen int) []string {
	body, ok := findComment(line, keyword, anyBody)
	if !ok {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(body, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		id = sanitizeID(id)
		if id == "" {
			continue
		}
		if maxLen > 0 {
			id = truncateRunes(id, maxLen)
		}
		ids = append(ids, id)
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// sanitizeID mirrors the importer's id sanitization: embedded newlines,
// carriage returns and angle brackets are removed, the comment-terminator
// "--" sequence is collapsed, and the result is trimmed.
func sanitizeID(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = strings.ReplaceAll(s, "--", "")
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
