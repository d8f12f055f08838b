package tts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const analysisPrompt = "Transcribe the audio. Also, analyze the speaker's vocal characteristics " +
	"(such as pace, pitch, and tone) and provide a concise, one-sentence description of their " +
	"vocal style. Do not add any conversational filler."

// GeminiConfig configures the Gemini-backed collaborator.
type GeminiConfig struct {
	APIKey        string
	SpeechModel   string
	AnalysisModel string
}

// Gemini implements Synthesizer and Analyzer against the Gemini API.
// The speech model returns raw 24 kHz mono 16-bit PCM as inline data.
type Gemini struct {
	client        *genai.Client
	speechModel   string
	analysisModel string
}

// NewGemini creates a Gemini collaborator.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if cfg.SpeechModel == "" || cfg.AnalysisModel == "" {
		return nil, errors.New("gemini model names are required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &Gemini{
		client:        client,
		speechModel:   cfg.SpeechModel,
		analysisModel: cfg.AnalysisModel,
	}, nil
}

// Synthesize requests spoken audio for text in the given prebuilt voice,
// narrated with the given style instruction. It returns the raw PCM payload.
func (g *Gemini) Synthesize(ctx context.Context, text, voiceID, style string) ([]byte, error) {
	prompt := fmt.Sprintf("Using the following style instruction: %q, say this text: %q", style, text)

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceID},
			},
		},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(prompt)}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.speechModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, ErrNoAudio
}

// Analyze transcribes a voice sample and describes its vocal style.
func (g *Gemini) Analyze(ctx context.Context, audio []byte, mimeType string) (Analysis, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
				genai.NewPartFromText(analysisPrompt),
			},
		},
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"transcription": {
					Type:        genai.TypeString,
					Description: "The verbatim transcription of the audio.",
				},
				"vocalStyle": {
					Type:        genai.TypeString,
					Description: "A concise, one-sentence description of the speaker's vocal style.",
				},
			},
			Required: []string{"transcription", "vocalStyle"},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.analysisModel, contents, cfg)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze audio: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	var result Analysis
	if err := json.Unmarshal([]byte(sb.String()), &result); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis response: %w", err)
	}
	if result.Transcription == "" || result.VocalStyle == "" {
		return Analysis{}, errors.New("analysis response missing transcription or vocal style")
	}

	return result, nil
}
