package script

import "strings"

// Line is one parsed dialogue line: "Speaker: text".
type Line struct {
	Speaker string
	Text    string
}

// ParseDialogue splits a transcript into ordered dialogue lines. Each input
// line is trimmed; lines without a colon, with an empty speaker prefix, or
// with an empty body after trimming are dropped. Line order is playback
// order.
func ParseDialogue(text string) []Line {
	var lines []Line

	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		colon := strings.IndexByte(trimmed, ':')
		if colon <= 0 {
			continue
		}

		speaker := strings.TrimSpace(trimmed[:colon])
		body := strings.TrimSpace(trimmed[colon+1:])
		if speaker == "" || body == "" {
			continue
		}

		lines = append(lines, Line{Speaker: speaker, Text: body})
	}

	return lines
}

// SpeakerNames collects the distinct trimmed speaker prefixes from every
// line containing a colon, in order of first appearance. Unlike
// ParseDialogue it does not require the line body to be non-empty, so a
// speaker shows up for assignment as soon as their name is typed.
func SpeakerNames(text string) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, raw := range strings.Split(text, "\n") {
		colon := strings.IndexByte(raw, ':')
		if colon <= 0 {
			continue
		}

		name := strings.TrimSpace(raw[:colon])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
