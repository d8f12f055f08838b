// Package studio orchestrates full generation requests: parsing, per-segment
// synthesis, buffer assembly, and WAV encoding.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/script"
	"github.com/example/voice-studio/internal/tts"
)

// Mode selects how the input text is interpreted.
type Mode string

const (
	ModeText     Mode = "text"     // one utterance, one synthesis call
	ModeAdvanced Mode = "advanced" // inline tag grammar, sequential segments
	ModeDialogue Mode = "dialogue" // Speaker: line grammar, concurrent lines
)

// ErrNoValidContent is returned when filtering leaves zero usable segments
// or lines to synthesize.
var ErrNoValidContent = errors.New("no valid content to generate")

// Request is one generation request. All inputs are explicit snapshots;
// the generator reads no shared mutable state.
type Request struct {
	Mode        Mode
	Text        string
	VoiceID     string
	Emotion     string // emotion style phrase, or the custom sentinel
	CustomStyle string
	Speakers    map[string]string // dialogue only: speaker name -> voice ID
	Recreation  bool              // text and style derived from a prior audio analysis
}

// Result is a completed generation: the canonical WAV container plus the
// assembled samples for playback.
type Result struct {
	WAV          []byte
	Samples      []float32
	IsRecreation bool
}

// Generator runs generation requests against a synthesis collaborator and
// a voice catalog. Only one generation runs per Generator at a time.
type Generator struct {
	segments    *tts.SegmentSynthesizer
	voices      *tts.VoiceManager
	log         *slog.Logger
	progress    func(status string)
	concurrency int
}

// Option configures a Generator.
type Option func(*Generator)

// WithProgress sets a callback receiving human-readable progress updates.
func WithProgress(fn func(status string)) Option {
	return func(g *Generator) { g.progress = fn }
}

// WithLogger sets the slog.Logger used for generation logging.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithConcurrency caps concurrent dialogue-line synthesis. A limit of 1
// makes dialogue generation fully sequential.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// New builds a Generator.
func New(synth tts.Synthesizer, voices *tts.VoiceManager, opts ...Option) *Generator {
	g := &Generator{
		segments:    tts.NewSegmentSynthesizer(synth),
		voices:      voices,
		log:         slog.Default(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Generator) report(status string) {
	if g.progress != nil {
		g.progress(status)
	}
}

// Generate runs one request to completion. On failure no partial result is
// returned; the error message is suitable for surfacing verbatim.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: input text is empty", ErrNoValidContent)
	}

	var samples []float32
	var err error

	switch req.Mode {
	case ModeDialogue:
		samples, err = g.generateDialogue(ctx, req)
	case ModeAdvanced:
		samples, err = g.generateAdvanced(ctx, req)
	case ModeText, "":
		samples, err = g.generateText(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported mode %q", req.Mode)
	}
	if err != nil {
		return nil, err
	}

	g.report("Finalizing audio…")
	wav := audio.EncodeWAV(samples)

	g.log.Debug("generation complete",
		slog.String("mode", string(req.Mode)),
		slog.Int("frames", len(samples)),
		slog.Int("wav_bytes", len(wav)),
	)

	return &Result{WAV: wav, Samples: samples, IsRecreation: req.Recreation}, nil
}

// generateText synthesizes the whole input as one utterance.
func (g *Generator) generateText(ctx context.Context, req Request) ([]float32, error) {
	if req.Recreation {
		g.report("Generating recreated voice…")
	} else {
		g.report("Generating speech…")
	}

	voiceID, err := g.voices.ResolveSynthesisVoice(req.VoiceID)
	if err != nil {
		return nil, err
	}
	style := tts.ResolveStyle(req.Emotion, req.CustomStyle)

	return g.segments.Synthesize(ctx, script.Segment{Text: req.Text}, voiceID, style)
}

// generateAdvanced parses the tag grammar and synthesizes segments strictly
// in order, one at a time, so progress reporting follows segment order.
func (g *Generator) generateAdvanced(ctx context.Context, req Request) ([]float32, error) {
	g.report("Parsing advanced script…")
	segments := script.ParseAdvanced(req.Text)

	voiceID, err := g.voices.ResolveSynthesisVoice(req.VoiceID)
	if err != nil {
		return nil, err
	}
	style := tts.ResolveStyle(req.Emotion, req.CustomStyle)

	var buffers [][]float32
	for i, seg := range segments {
		if !seg.IsPause && strings.TrimSpace(seg.Text) == "" {
			continue
		}

		g.report(fmt.Sprintf("Generating segment %d of %d…", i+1, len(segments)))

		samples, err := g.segments.Synthesize(ctx, seg, voiceID, style)
		if err != nil {
			return nil, err
		}
		buffers = append(buffers, samples)
	}

	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: script is empty or contains only whitespace", ErrNoValidContent)
	}

	return audio.Concatenate(buffers)
}

// generateDialogue synthesizes dialogue lines, possibly concurrently.
// Results land in index-addressed slots so output order always follows the
// original line order regardless of completion order. Lines whose speaker
// has no assignment are silently skipped.
func (g *Generator) generateDialogue(ctx context.Context, req Request) ([]float32, error) {
	lines := script.ParseDialogue(req.Text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no valid dialogue lines found to generate", ErrNoValidContent)
	}

	type task struct {
		index   int
		line    script.Line
		voiceID string
	}

	var tasks []task
	for i, line := range lines {
		assigned, ok := req.Speakers[line.Speaker]
		if !ok {
			continue
		}
		voiceID, err := g.voices.ResolveSynthesisVoice(assigned)
		if err != nil {
			return nil, fmt.Errorf("speaker %q: %w", line.Speaker, err)
		}
		tasks = append(tasks, task{index: i, line: line, voiceID: voiceID})
	}

	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no valid dialogue lines found to generate", ErrNoValidContent)
	}

	slots := make([][]float32, len(lines))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.concurrency)

	for _, t := range tasks {
		g.report(fmt.Sprintf("Generating line %d of %d…", t.index+1, len(lines)))

		grp.Go(func() error {
			samples, err := g.segments.Synthesize(ctx, script.Segment{Text: t.line.Text}, t.voiceID, tts.StyleNeutral)
			if err != nil {
				return fmt.Errorf("line %d (%s): %w", t.index+1, t.line.Speaker, err)
			}

			slots[t.index] = samples
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var buffers [][]float32
	for _, samples := range slots {
		if samples != nil {
			buffers = append(buffers, samples)
		}
	}
	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: no valid dialogue lines found to generate", ErrNoValidContent)
	}

	return audio.Concatenate(buffers)
}
