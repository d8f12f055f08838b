package script

import (
	"reflect"
	"testing"
)

func TestParseDialogue(t *testing.T) {
	t.Run("splits on first colon and trims both sides", func(t *testing.T) {
		lines := ParseDialogue("  Alice :  Hi there.  \nBob: Note: see below")
		want := []Line{
			{Speaker: "Alice", Text: "Hi there."},
			{Speaker: "Bob", Text: "Note: see below"},
		}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("got %+v, want %+v", lines, want)
		}
	})

	t.Run("drops invalid lines", func(t *testing.T) {
		cases := []struct {
			name string
			in   string
		}{
			{"no colon", "just narration"},
			{"empty speaker", ": hello"},
			{"empty body", "Alice:"},
			{"whitespace body", "Alice:    "},
			{"blank line", "   "},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if lines := ParseDialogue(tc.in); len(lines) != 0 {
					t.Errorf("got %+v, want none", lines)
				}
			})
		}
	})

	t.Run("preserves line order", func(t *testing.T) {
		lines := ParseDialogue("B: two\nA: one\nB: three")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want 3", len(lines))
		}
		if lines[0].Text != "two" || lines[1].Text != "one" || lines[2].Text != "three" {
			t.Errorf("lines out of order: %+v", lines)
		}
	})

	t.Run("skips invalid lines between valid ones", func(t *testing.T) {
		lines := ParseDialogue("A: first\n\nstage direction\nB: second")
		want := []Line{
			{Speaker: "A", Text: "first"},
			{Speaker: "B", Text: "second"},
		}
		if !reflect.DeepEqual(lines, want) {
			t.Errorf("got %+v, want %+v", lines, want)
		}
	})
}

func TestSpeakerNames(t *testing.T) {
	t.Run("first appearance order, deduplicated", func(t *testing.T) {
		names := SpeakerNames("Bob: hi\nAlice: hey\nBob: again")
		want := []string{"Bob", "Alice"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("got %v, want %v", names, want)
		}
	})

	t.Run("includes speakers without a body yet", func(t *testing.T) {
		names := SpeakerNames("Alice:")
		want := []string{"Alice"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("got %v, want %v", names, want)
		}
	})

	t.Run("ignores lines without a speaker prefix", func(t *testing.T) {
		if names := SpeakerNames("no colon here\n: orphan body"); len(names) != 0 {
			t.Errorf("got %v, want none", names)
		}
	})
}
