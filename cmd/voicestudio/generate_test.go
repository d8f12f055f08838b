package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadInputText(t *testing.T) {
	t.Run("flag value wins over stdin", func(t *testing.T) {
		got, err := readInputText("from flag", strings.NewReader("from stdin"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "from flag" {
			t.Errorf("got %q, want %q", got, "from flag")
		}
	})

	t.Run("falls back to stdin", func(t *testing.T) {
		got, err := readInputText("", strings.NewReader("piped text\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "piped text\n" {
			t.Errorf("got %q, want %q", got, "piped text\n")
		}
	})

	t.Run("blank stdin is an error", func(t *testing.T) {
		if _, err := readInputText("", strings.NewReader("  \n")); err == nil {
			t.Error("expected error for blank input")
		}
	})
}

func TestParseSpeakerFlags(t *testing.T) {
	t.Run("parses repeated assignments", func(t *testing.T) {
		got, err := parseSpeakerFlags([]string{"Alice=Kore", "Bob = Puck"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]string{"Alice": "Kore", "Bob": "Puck"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("no flags yields nil", func(t *testing.T) {
		got, err := parseSpeakerFlags(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("rejects malformed assignments", func(t *testing.T) {
		for _, in := range []string{"Alice", "=Kore", "Alice=", " = "} {
			if _, err := parseSpeakerFlags([]string{in}); err == nil {
				t.Errorf("parseSpeakerFlags(%q): expected error", in)
			}
		}
	})
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("got %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestWriteOutput(t *testing.T) {
	t.Run("dash writes to stdout", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeOutput("-", []byte("wav bytes"), &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "wav bytes" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("path writes a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.wav")
		if err := writeOutput(path, []byte("wav bytes"), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if string(data) != "wav bytes" {
			t.Errorf("got %q", data)
		}
	})
}
