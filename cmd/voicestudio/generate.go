package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/voice-studio/internal/studio"
	"github.com/example/voice-studio/internal/tts"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var text string
	var out string
	var mode string
	var voice string
	var emotion string
	var customStyle string
	var speakerFlags []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate speech audio as WAV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputText, err := readInputText(text, os.Stdin)
			if err != nil {
				return err
			}

			speakers, err := parseSpeakerFlags(speakerFlags)
			if err != nil {
				return err
			}

			req := studio.Request{
				Mode:        studio.Mode(mode),
				Text:        inputText,
				VoiceID:     firstNonEmpty(voice, cfg.TTS.Voice),
				Emotion:     firstNonEmpty(emotion, cfg.TTS.Emotion),
				CustomStyle: firstNonEmpty(customStyle, cfg.TTS.CustomStyle),
				Speakers:    speakers,
			}

			// Dialogue mode with no explicit assignments: assign every
			// speaker in the script the selected voice.
			if req.Mode == studio.ModeDialogue && len(req.Speakers) == 0 {
				req.Speakers = studio.RefreshAssignments(inputText, nil, req.VoiceID)
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

			gen := studio.New(gemini, voices,
				studio.WithConcurrency(cfg.TTS.Concurrency),
				studio.WithProgress(func(status string) {
					_, _ = fmt.Fprintln(os.Stderr, status)
				}),
			)

			result, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			return writeOutput(out, result.WAV, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to synthesize (if empty, read from stdin)")
	cmd.Flags().StringVar(&out, "out", "out.wav", "Output WAV path ('-' for stdout)")
	cmd.Flags().StringVar(&mode, "mode", "text", "Input mode (text|advanced|dialogue)")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice ID (overrides --tts-voice)")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Emotion style phrase or 'custom' (overrides --tts-emotion)")
	cmd.Flags().StringVar(&customStyle, "style", "", "Custom style text used with --emotion custom")
	cmd.Flags().StringArrayVar(&speakerFlags, "speaker", nil, "Dialogue speaker assignment name=voiceID (repeatable)")

	return cmd
}

// readInputText returns the --text flag value, or everything from stdin
// when the flag is empty.
func readInputText(flag string, stdin io.Reader) (string, error) {
	if flag != "" {
		return flag, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read text from stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text: pass --text or pipe text on stdin")
	}

	return string(data), nil
}

// parseSpeakerFlags parses repeated name=voiceID assignments.
func parseSpeakerFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	speakers := make(map[string]string, len(flags))
	for _, f := range flags {
		name, voiceID, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(voiceID) == "" {
			return nil, fmt.Errorf("invalid --speaker %q (want name=voiceID)", f)
		}
		speakers[strings.TrimSpace(name)] = strings.TrimSpace(voiceID)
	}

	return speakers, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// writeOutput writes WAV bytes to path, or to stdout when path is "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
