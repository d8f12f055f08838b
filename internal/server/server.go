package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/config"
	"github.com/example/voice-studio/internal/studio"
	"github.com/example/voice-studio/internal/tts"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Generator runs a full generation request.
type Generator interface {
	Generate(ctx context.Context, req studio.Request) (*studio.Result, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   4096,
		workers:        2,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /tts.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent generation requests.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request generation deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	gen      Generator
	analyzer tts.Analyzer
	voices   *tts.VoiceManager
	opts     options
	sem      chan struct{} // semaphore for worker pool
	log      *slog.Logger
}

// NewHandler returns an http.Handler serving the studio API: /health,
// /voices, /tts, and /analyze.
func NewHandler(gen Generator, analyzer tts.Analyzer, voices *tts.VoiceManager, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		gen:      gen,
		analyzer: analyzer,
		voices:   voices,
		opts:     opts,
		log:      opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /voices", h.handleListVoices)
	mux.HandleFunc("GET /languages", h.handleListLanguages)
	mux.HandleFunc("POST /voices", h.handleSaveVoice)
	mux.HandleFunc("DELETE /voices/{id}", h.handleDeleteVoice)
	mux.HandleFunc("POST /tts", h.handleTTS)
	mux.HandleFunc("POST /analyze", h.handleAnalyze)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	voices := h.voices.ListVoices()
	if voices == nil {
		voices = []tts.Voice{}
	}
	writeJSON(w, http.StatusOK, voices)
}

// handleListLanguages serves the reading-script catalog used to record
// voice samples for recreation.
func (h *handler) handleListLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages":          tts.Languages(),
		"minSeconds":         tts.MinSampleSeconds,
		"recommendedSeconds": tts.RecommendedSampleSeconds,
	})
}

type saveVoiceRequest struct {
	Name        string `json:"name"`
	BaseVoiceID string `json:"baseVoiceId"`
}

func (h *handler) handleSaveVoice(w http.ResponseWriter, r *http.Request) {
	var req saveVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name field is required")
		return
	}

	voice, err := h.voices.SaveCustom(req.Name, req.BaseVoiceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, voice)
}

func (h *handler) handleDeleteVoice(w http.ResponseWriter, r *http.Request) {
	if err := h.voices.DeleteCustom(r.PathValue("id")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ttsRequest struct {
	Text        string            `json:"text"`
	Mode        string            `json:"mode"`
	Voice       string            `json:"voice"`
	Emotion     string            `json:"emotion"`
	CustomStyle string            `json:"customStyle"`
	Speakers    map[string]string `json:"speakers"`
	Recreation  bool              `json:"recreation"`
}

func (h *handler) handleTTS(w http.ResponseWriter, r *http.Request) {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	// Acquire a worker slot — honour context cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
			// slot acquired
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	// Apply per-request timeout.
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	result, err := h.gen.Generate(ctx, studio.Request{
		Mode:        studio.Mode(req.Mode),
		Text:        req.Text,
		VoiceID:     req.Voice,
		Emotion:     req.Emotion,
		CustomStyle: req.CustomStyle,
		Speakers:    req.Speakers,
		Recreation:  req.Recreation,
	})
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			h.log.WarnContext(r.Context(), "generation timed out",
				slog.String("voice", req.Voice),
				slog.Int("text_len", len(req.Text)),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusGatewayTimeout, "generation timed out")
			return
		}
		status := http.StatusInternalServerError
		if errors.Is(err, studio.ErrNoValidContent) {
			status = http.StatusUnprocessableEntity
		}
		h.log.ErrorContext(r.Context(), "generation failed",
			slog.String("voice", req.Voice),
			slog.String("mode", req.Mode),
			slog.Int("text_len", len(req.Text)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, status, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "generation complete",
		slog.String("voice", req.Voice),
		slog.String("mode", req.Mode),
		slog.Int("text_len", len(req.Text)),
		slog.Int64("duration_ms", durationMS),
		slog.Int("wav_bytes", len(result.WAV)),
	)

	w.Header().Set("Content-Type", "audio/wav")
	if result.IsRecreation {
		w.Header().Set("X-Voice-Recreation", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.WAV)
}

type analyzeRequest struct {
	Audio    string `json:"audio"` // base64-encoded sample
	MimeType string `json:"mimeType"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Audio == "" || req.MimeType == "" {
		writeError(w, http.StatusBadRequest, "audio and mimeType fields are required")
		return
	}

	sample, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio field is not valid base64")
		return
	}

	// WAV samples can be measured locally; reject ones too short to
	// capture a usable vocal signature.
	if req.MimeType == "audio/wav" {
		seconds, err := audio.WAVDuration(sample)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid WAV sample: "+err.Error())
			return
		}
		if seconds < tts.MinSampleSeconds {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("sample is %.1fs long; at least %ds is required", seconds, tts.MinSampleSeconds))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	analysis, err := h.analyzer.Analyze(ctx, sample, req.MimeType)
	if err != nil {
		h.log.ErrorContext(r.Context(), "analysis failed",
			slog.String("mime_type", req.MimeType),
			slog.Int("sample_bytes", len(sample)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	shutdownTimeout time.Duration
}

func New(cfg config.Config) *Server {
	return &Server{
		cfg:             cfg,
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	gemini, err := tts.NewGemini(ctx, tts.GeminiConfig{
		APIKey:        s.cfg.Gemini.APIKey,
		SpeechModel:   s.cfg.Gemini.SpeechModel,
		AnalysisModel: s.cfg.Gemini.AnalysisModel,
	})
	if err != nil {
		return err
	}

	voices, err := tts.NewVoiceManager(s.cfg.Paths.VoicesPath)
	if err != nil {
		return err
	}

	gen := studio.New(gemini, voices,
		studio.WithConcurrency(s.cfg.TTS.Concurrency),
	)

	h := NewHandler(gen, gemini, voices,
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
