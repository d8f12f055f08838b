package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/studio"
	"github.com/example/voice-studio/internal/tts"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range cases {
		t.Run("level "+tc.in, func(t *testing.T) {
			got, err := ParseLogLevel(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLogLevel(%q): expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLogLevel(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

type fakeAnalyzer struct {
	analysis tts.Analysis
	err      error

	lastMime  string
	lastBytes int
}

func (a *fakeAnalyzer) Analyze(_ context.Context, sample []byte, mimeType string) (tts.Analysis, error) {
	a.lastMime = mimeType
	a.lastBytes = len(sample)
	return a.analysis, a.err
}

func newTestHandler(t *testing.T, synth tts.Synthesizer, analyzer tts.Analyzer, opts ...Option) (http.Handler, *tts.VoiceManager) {
	t.Helper()
	voices, err := tts.NewVoiceManager("")
	if err != nil {
		t.Fatalf("voice manager: %v", err)
	}
	gen := studio.New(synth, voices)
	return NewHandler(gen, analyzer, voices, opts...), voices
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field %q, want ok", body["status"])
	}
}

func TestHandleVoices(t *testing.T) {
	t.Run("list returns the builtin catalog", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/voices", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200", rec.Code)
		}
		var voices []tts.Voice
		if err := json.Unmarshal(rec.Body.Bytes(), &voices); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(voices) != len(tts.BuiltinVoices()) {
			t.Errorf("got %d voices, want %d", len(voices), len(tts.BuiltinVoices()))
		}
	})

	t.Run("save then delete a custom voice", func(t *testing.T) {
		h, voices := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/voices", map[string]string{"name": "Narrator", "baseVoiceId": "Charon"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d, want 201: %s", rec.Code, rec.Body.String())
		}
		var saved tts.Voice
		if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !saved.IsCustom || saved.BaseVoiceID != "Charon" {
			t.Errorf("saved voice %+v, want custom over Charon", saved)
		}

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/voices/"+saved.ID, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete status %d, want 204", rec.Code)
		}
		if _, ok := voices.Lookup(saved.ID); ok {
			t.Error("voice still present after delete")
		}
	})

	t.Run("save rejects missing name", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/voices", map[string]string{"baseVoiceId": "Kore"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})

	t.Run("delete rejects builtin voices", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/voices/Kore", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})
}

func TestHandleListLanguages(t *testing.T) {
	h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/languages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var body struct {
		Languages          []tts.Language `json:"languages"`
		MinSeconds         int            `json:"minSeconds"`
		RecommendedSeconds int            `json:"recommendedSeconds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Languages) != len(tts.Languages()) {
		t.Errorf("got %d languages, want %d", len(body.Languages), len(tts.Languages()))
	}
	for _, l := range body.Languages {
		if l.Code == "" || l.Script == "" {
			t.Errorf("language with blank field: %+v", l)
		}
	}
	if body.MinSeconds != tts.MinSampleSeconds || body.RecommendedSeconds != tts.RecommendedSampleSeconds {
		t.Errorf("bounds %d/%d, want %d/%d",
			body.MinSeconds, body.RecommendedSeconds, tts.MinSampleSeconds, tts.RecommendedSampleSeconds)
	}
}

func TestHandleTTS(t *testing.T) {
	t.Run("returns a WAV body", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(100), &fakeAnalyzer{})

		rec := postJSON(t, h, "/tts", map[string]any{"text": "Hello", "voice": "Kore"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("content type %q, want audio/wav", ct)
		}
		body := rec.Body.Bytes()
		if len(body) != 44+200 {
			t.Errorf("body is %d bytes, want %d", len(body), 44+200)
		}
		if string(body[0:4]) != "RIFF" {
			t.Error("body is not a RIFF container")
		}
	})

	t.Run("recreation sets the response header", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/tts", map[string]any{"text": "Hello", "voice": "Kore", "recreation": true})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200", rec.Code)
		}
		if rec.Header().Get("X-Voice-Recreation") != "true" {
			t.Error("missing X-Voice-Recreation header")
		}
	})

	t.Run("missing text is rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/tts", map[string]any{"voice": "Kore"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})

	t.Run("oversize text is rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{}, WithMaxTextBytes(16))

		rec := postJSON(t, h, "/tts", map[string]any{"text": strings.Repeat("a", 17), "voice": "Kore"})
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status %d, want 413", rec.Code)
		}
	})

	t.Run("unusable content maps to 422", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/tts", map[string]any{
			"text":     "no dialogue here",
			"mode":     "dialogue",
			"voice":    "Kore",
			"speakers": map[string]string{},
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status %d, want 422: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("generation failure maps to 500", func(t *testing.T) {
		mock := &tts.Mock{Fn: func(_, _, _ string) ([]byte, error) {
			return nil, fmt.Errorf("upstream unavailable")
		}}
		h, _ := newTestHandler(t, mock, &fakeAnalyzer{})

		rec := postJSON(t, h, "/tts", map[string]any{"text": "Hello", "voice": "Kore"})
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status %d, want 500", rec.Code)
		}
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})
}

func TestHandleAnalyze(t *testing.T) {
	longSample := audio.EncodeWAV(make([]float32, audio.SampleRate*12))
	shortSample := audio.EncodeWAV(make([]float32, audio.SampleRate*2))

	t.Run("returns the analysis", func(t *testing.T) {
		analyzer := &fakeAnalyzer{analysis: tts.Analysis{
			Transcription: "hello world",
			VocalStyle:    "calm and low",
		}}
		h, _ := newTestHandler(t, tts.NewMock(10), analyzer)

		rec := postJSON(t, h, "/analyze", map[string]string{
			"audio":    base64.StdEncoding.EncodeToString(longSample),
			"mimeType": "audio/wav",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
		}
		var got tts.Analysis
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if got.Transcription != "hello world" || got.VocalStyle != "calm and low" {
			t.Errorf("got %+v", got)
		}
		if analyzer.lastMime != "audio/wav" || analyzer.lastBytes != len(longSample) {
			t.Errorf("analyzer saw %q / %d bytes", analyzer.lastMime, analyzer.lastBytes)
		}
	})

	t.Run("short WAV samples are rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/analyze", map[string]string{
			"audio":    base64.StdEncoding.EncodeToString(shortSample),
			"mimeType": "audio/wav",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/analyze", map[string]string{"mimeType": "audio/wav"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})

	t.Run("invalid base64 is rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, tts.NewMock(10), &fakeAnalyzer{})

		rec := postJSON(t, h, "/analyze", map[string]string{
			"audio":    "not-base64!!!",
			"mimeType": "audio/wav",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d, want 400", rec.Code)
		}
	})
}
