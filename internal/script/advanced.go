// Package script parses the studio's text input formats: the advanced
// inline tag grammar and the Speaker: line dialogue grammar.
package script

import (
	"strconv"
	"strings"
)

// Style modifiers contributed by recognized tags. Modifiers render as
// prefixes in front of the base style ("with emphasis, happily").
const (
	ModifierEmphasis = "with emphasis"
	ModifierFast     = "speaking fast"
	ModifierSlow     = "speaking slow"
)

// Segment is one atomic unit of a parsed script: speech text carrying style
// modifiers, or a timed pause. Segments map one to one, in order, onto the
// sub-buffers that are concatenated into the final output.
type Segment struct {
	Text      string   // speech text; empty for pauses
	Modifiers []string // tag-derived style modifiers, in tag order
	Pause     float64  // pause duration in seconds, valid when IsPause
	IsPause   bool
}

const (
	emphasisOpen  = "<emphasis>"
	emphasisClose = "</emphasis>"
	rateFastOpen  = `<rate speed="fast">`
	rateSlowOpen  = `<rate speed="slow">`
	rateClose     = "</rate>"
	breakOpen     = `<break time="`
	breakClose    = `s" />`
)

// ParseAdvanced scans text for the three tag forms — <emphasis>…</emphasis>,
// <rate speed="fast|slow">…</rate>, and <break time="Ds" /> — and splits it
// into an ordered segment sequence alternating plain runs and tagged runs.
// Unrecognized or malformed tags are kept as literal text. Whitespace-only
// plain runs are preserved; callers drop them before synthesis, not before
// ordering.
func ParseAdvanced(text string) []Segment {
	var segments []Segment
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if text[i] != '<' {
			next := strings.IndexByte(text[i:], '<')
			if next < 0 {
				plain.WriteString(text[i:])
				break
			}
			plain.WriteString(text[i : i+next])
			i += next
			continue
		}

		seg, n, ok := scanTag(text[i:])
		if !ok {
			// Not a recognized tag: the '<' is literal text.
			plain.WriteByte('<')
			i++
			continue
		}

		flush()
		segments = append(segments, seg)
		i += n
	}
	flush()

	return segments
}

// scanTag attempts to match one recognized tag at the start of s. It returns
// the resulting segment and the number of bytes consumed.
func scanTag(s string) (Segment, int, bool) {
	if inner, n, ok := scanEnclosed(s, emphasisOpen, emphasisClose); ok {
		return Segment{Text: inner, Modifiers: []string{ModifierEmphasis}}, n, true
	}
	if inner, n, ok := scanEnclosed(s, rateFastOpen, rateClose); ok {
		return Segment{Text: inner, Modifiers: []string{ModifierFast}}, n, true
	}
	if inner, n, ok := scanEnclosed(s, rateSlowOpen, rateClose); ok {
		return Segment{Text: inner, Modifiers: []string{ModifierSlow}}, n, true
	}
	if seconds, n, ok := scanBreak(s); ok {
		return Segment{Pause: seconds, IsPause: true}, n, true
	}

	return Segment{}, 0, false
}

// scanEnclosed matches open + inner + close at the start of s, taking the
// nearest closing tag (non-greedy).
func scanEnclosed(s, open, close string) (string, int, bool) {
	if !strings.HasPrefix(s, open) {
		return "", 0, false
	}

	rest := s[len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return "", 0, false
	}

	return rest[:end], len(open) + end + len(close), true
}

// scanBreak matches <break time="Ds" /> where D is a non-negative decimal.
func scanBreak(s string) (float64, int, bool) {
	if !strings.HasPrefix(s, breakOpen) {
		return 0, 0, false
	}

	rest := s[len(breakOpen):]
	digits := decimalLen(rest)
	if digits == 0 {
		return 0, 0, false
	}
	if !strings.HasPrefix(rest[digits:], breakClose) {
		return 0, 0, false
	}

	seconds, err := strconv.ParseFloat(rest[:digits], 64)
	if err != nil {
		return 0, 0, false
	}

	return seconds, len(breakOpen) + digits + len(breakClose), true
}

// decimalLen returns the length of the leading decimal number in s
// (digits with at most one dot, ending in at least one digit), or 0.
func decimalLen(s string) int {
	n := 0
	seenDot := false
	seenDigit := false

	for n < len(s) {
		c := s[n]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenDigit:
			// Leading dot as in ".5" is allowed, one dot total.
			seenDot = true
		case c == '.' && !seenDot:
			seenDot = true
			seenDigit = false // require digits after the dot
		default:
			if !seenDigit {
				return 0
			}
			return n
		}
		n++
	}

	if !seenDigit {
		return 0
	}
	return n
}
