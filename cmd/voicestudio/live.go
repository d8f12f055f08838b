package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/live"
	"github.com/example/voice-studio/internal/studio"
	"github.com/example/voice-studio/internal/tts"
	"github.com/spf13/cobra"
)

func newLiveCmd() *cobra.Command {
	var out string
	var voice string
	var emotion string
	var customStyle string

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Live session: type text, get incrementally scheduled audio",
		Long: "Reads lines from stdin as a live typing session. Each pause in input " +
			"dispatches the new text for synthesis and schedules it gaplessly on a " +
			"shared timeline. On EOF the rendered timeline is written as WAV.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			gemini, err := tts.NewGemini(cmd.Context(), tts.GeminiConfig{
				APIKey:        cfg.Gemini.APIKey,
				SpeechModel:   cfg.Gemini.SpeechModel,
				AnalysisModel: cfg.Gemini.AnalysisModel,
			})
			if err != nil {
				return err
			}

			voices, err := tts.NewVoiceManager(cfg.Paths.VoicesPath)
			if err != nil {
				return err
			}

			timeline := live.NewTimelineBuffer()
			debounce := time.Duration(cfg.Live.DebounceMS) * time.Millisecond

			var dispatchErr error
			scheduler := live.NewScheduler(gemini, voices, live.NewSystemClock(), timeline,
				live.WithDebounce(debounce),
				live.WithErrorHandler(func(err error) { dispatchErr = err }),
			)

			params := live.Params{
				VoiceID:     firstNonEmpty(voice, cfg.TTS.Voice),
				Emotion:     firstNonEmpty(emotion, cfg.TTS.Emotion),
				CustomStyle: firstNonEmpty(customStyle, cfg.TTS.CustomStyle),
			}

			scheduler.Start(cmd.Context(), "", params)

			var script strings.Builder
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				script.WriteString(scanner.Text())
				script.WriteString("\n")
				scheduler.TextChanged(script.String(), params)
			}
			if err := scanner.Err(); err != nil {
				scheduler.Stop()
				return fmt.Errorf("read stdin: %w", err)
			}

			// Let the trailing debounce window fire, then wait for
			// in-flight synthesis before rendering.
			time.Sleep(debounce + 50*time.Millisecond)
			scheduler.Stop()
			scheduler.Drain()

			if dispatchErr != nil {
				return dispatchErr
			}

			samples := timeline.Samples()
			if len(samples) == 0 {
				return studio.ErrNoValidContent
			}

			return writeOutput(out, audio.EncodeWAV(samples), os.Stdout)
		},
	}

	cmd.Flags().StringVar(&out, "out", "live.wav", "Output WAV path ('-' for stdout)")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice ID (overrides --tts-voice)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Emotion style phrase or 'custom'")
	cmd.Flags().StringVar(&customStyle, "style", "", "Custom style text used with --emotion custom")

	return cmd
}
