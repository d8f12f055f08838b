package live

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/tts"
)

// DefaultDebounce is the quiet interval after the last edit before the
// unprocessed text suffix is dispatched.
const DefaultDebounce = 800 * time.Millisecond

// Params is the voice/style snapshot for one dispatch. Callers pass it at
// call time; the scheduler never reads shared selection state, so a style
// change mid-session applies to new chunks only.
type Params struct {
	VoiceID     string
	Emotion     string
	CustomStyle string
}

// Scheduler drives a live session: it debounces text edits, synthesizes
// only the unprocessed suffix, and schedules each resulting buffer at
// max(now, previous end) on the shared clock, so chunks never overlap and
// never play out of dispatch order. Gaps are tolerated, overlaps are not.
type Scheduler struct {
	synth    tts.Synthesizer
	voices   *tts.VoiceManager
	clock    Clock
	out      Output
	debounce time.Duration
	log      *slog.Logger
	onError  func(error)

	mu        sync.Mutex
	ctx       context.Context
	active    bool
	processed int         // cursor: how much of the script has been dispatched
	nextStart float64     // clock time the next chunk may begin
	timer     *time.Timer // single-slot pending debounce timer

	inflight sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.debounce = d }
}

// WithSchedulerLogger sets the slog.Logger used for session logging.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.log = l }
}

// WithErrorHandler sets a callback invoked when a dispatch fails. The
// session is already stopped when the callback runs.
func WithErrorHandler(fn func(error)) SchedulerOption {
	return func(s *Scheduler) { s.onError = fn }
}

// NewScheduler builds a live scheduler over a synthesis collaborator, a
// voice catalog, and an audio output clock.
func NewScheduler(synth tts.Synthesizer, voices *tts.VoiceManager, clock Clock, out Output, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		synth:    synth,
		voices:   voices,
		clock:    clock,
		out:      out,
		debounce: DefaultDebounce,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Active reports whether a live session is running.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// Start begins a live session, resetting the text cursor and anchoring the
// playback timeline at the current clock time. If fullText already has
// content it is dispatched immediately as the first chunk. Starting an
// active session is a no-op.
func (s *Scheduler) Start(ctx context.Context, fullText string, p Params) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.ctx = ctx
	s.processed = 0
	s.nextStart = s.clock.Now()

	chunk := strings.TrimSpace(fullText)
	if chunk != "" {
		s.processed = len(fullText)
	}
	s.mu.Unlock()

	if chunk != "" {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.dispatch(ctx, chunk, p)
		}()
	}
}

// TextChanged notifies the scheduler of the current full script text.
// Dispatch is debounced: the pending timer is a single-slot resource,
// replaced (never stacked) on every edit, so a typing burst coalesces into
// one dispatch per pause.
func (s *Scheduler) TextChanged(fullText string, p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	ctx := s.ctx
	s.timer = time.AfterFunc(s.debounce, func() {
		s.flush(ctx, fullText, p)
	})
}

// flush dispatches the unprocessed suffix of fullText, if any.
func (s *Scheduler) flush(ctx context.Context, fullText string, p Params) {
	s.mu.Lock()
	if !s.active || s.processed >= len(fullText) {
		s.mu.Unlock()
		return
	}
	chunk := fullText[s.processed:]
	if strings.TrimSpace(chunk) == "" {
		s.mu.Unlock()
		return
	}
	s.processed = len(fullText)
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	s.dispatch(ctx, chunk, p)
}

// dispatch synthesizes one chunk and schedules it for gapless playback.
// The start time is bounded below by the previous chunk's computed end; if
// synthesis completed late, a gap is introduced rather than an overlap.
func (s *Scheduler) dispatch(ctx context.Context, chunk string, p Params) {
	voiceID, err := s.voices.ResolveSynthesisVoice(p.VoiceID)
	if err != nil {
		s.fail(err)
		return
	}
	style := tts.ResolveStyle(p.Emotion, p.CustomStyle)

	pcm, err := s.synth.Synthesize(ctx, chunk, voiceID, style)
	if err != nil {
		s.fail(err)
		return
	}
	if len(pcm) == 0 {
		s.fail(tts.ErrNoAudio)
		return
	}

	samples, err := audio.DecodePCM16(pcm)
	if err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	start := s.nextStart
	if now := s.clock.Now(); now > start {
		start = now
	}
	s.nextStart = start + audio.Duration(samples)
	s.mu.Unlock()

	s.log.Debug("scheduled live chunk",
		slog.Int("text_len", len(chunk)),
		slog.Int("frames", len(samples)),
		slog.Float64("start", start),
	)

	s.out.ScheduleAt(samples, start)
}

// fail stops the session and reports the error. A failed dispatch must not
// leave the session in an ambiguous active-but-broken state.
func (s *Scheduler) fail(err error) {
	s.Stop()
	s.log.Error("live dispatch failed", slog.String("error", err.Error()))
	if s.onError != nil {
		s.onError(err)
	}
}

// Stop ends the session and cancels any pending debounce timer. In-flight
// synthesis calls are not interrupted; their results may still be scheduled
// but no new chunks are produced.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Drain blocks until in-flight dispatches have completed. Used on shutdown
// so their audio is not lost.
func (s *Scheduler) Drain() {
	s.inflight.Wait()
}
