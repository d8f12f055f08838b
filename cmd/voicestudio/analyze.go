package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/voice-studio/internal/audio"
	"github.com/example/voice-studio/internal/tts"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var input string
	var mimeType string
	var scriptLang string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Transcribe a voice sample and describe its vocal style",
		Long: "Transcribes a recorded voice sample and infers a one-sentence vocal style " +
			"description. Feed the output to 'generate --emotion custom --style ...' to " +
			"recreate the voice in a different speaker. Use --print-script to get a " +
			"reading script for recording the sample.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scriptLang != "" {
				return printReadingScript(scriptLang, os.Stdout, os.Stderr)
			}

			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if input == "" {
				return fmt.Errorf("no voice sample: pass --input, or --print-script to get a script to record")
			}
			sample, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read sample: %w", err)
			}

			if mimeType == "audio/wav" {
				seconds, err := audio.WAVDuration(sample)
				if err != nil {
					return fmt.Errorf("invalid WAV sample: %w", err)
				}
				if seconds < tts.MinSampleSeconds {
					return fmt.Errorf("sample is %.1fs long; at least %ds is required for a usable analysis",
						seconds, tts.MinSampleSeconds)
				}
			}

			gemini, err := tts.NewGemini(cmd.Context(), tts.GeminiConfig{
				APIKey:        cfg.Gemini.APIKey,
				SpeechModel:   cfg.Gemini.SpeechModel,
				AnalysisModel: cfg.Gemini.AnalysisModel,
			})
			if err != nil {
				return err
			}

			analysis, err := gemini.Analyze(cmd.Context(), sample, mimeType)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to the voice sample file")
	cmd.Flags().StringVar(&mimeType, "mime", "audio/wav", "MIME type of the sample")
	cmd.Flags().StringVar(&scriptLang, "print-script", "",
		"Print the voice-recreation reading script for a language code and exit")

	return cmd
}

// printReadingScript writes the reading script for a language code to
// stdout, with a recording hint on stderr.
func printReadingScript(code string, stdout, stderr io.Writer) error {
	lang, ok := tts.LookupLanguage(code)
	if !ok {
		codes := make([]string, 0, len(tts.Languages()))
		for _, l := range tts.Languages() {
			codes = append(codes, l.Code)
		}
		return fmt.Errorf("unknown language %q (want one of %s)", code, strings.Join(codes, "|"))
	}

	_, _ = fmt.Fprintf(stderr, "Read this aloud and record at least %ds (about %ds recommended):\n",
		tts.MinSampleSeconds, tts.RecommendedSampleSeconds)
	_, err := fmt.Fprintln(stdout, lang.Script)
	return err
}
