package tts

import "strings"

// EmotionCustom is the sentinel emotion value selecting the user-supplied
// custom style text.
const EmotionCustom = "custom"

// StyleNeutral is the fallback style phrase, and the fixed style for
// dialogue lines.
const StyleNeutral = "neutrally"

// Emotion is a named emotional style. Value is the style phrase sent to the
// synthesis collaborator, or EmotionCustom.
type Emotion struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Emotions returns the emotion catalog.
func Emotions() []Emotion {
	return []Emotion{
		{Name: "Neutral", Value: "neutrally"},
		{Name: "Happy", Value: "happily"},
		{Name: "Excited", Value: "excitedly"},
		{Name: "Cheerful", Value: "cheerfully"},
		{Name: "Sad", Value: "sadly"},
		{Name: "Angry", Value: "angrily"},
		{Name: "Whispering", Value: "in a whisper"},
		{Name: "Shouting", Value: "loudly"},
		{Name: "Formal", Value: "formally"},
		{Name: "Friendly", Value: "in a friendly tone"},
		{Name: "Custom", Value: EmotionCustom},
	}
}

// ResolveStyle applies the style resolution rule: the custom sentinel uses
// the user-supplied style text, falling back to StyleNeutral when that text
// is blank; any other value is used as-is.
func ResolveStyle(emotionValue, customStyle string) string {
	if emotionValue == EmotionCustom {
		if strings.TrimSpace(customStyle) != "" {
			return customStyle
		}
		return StyleNeutral
	}
	if emotionValue == "" {
		return StyleNeutral
	}

	return emotionValue
}

// ComposeStyle joins tag modifiers as prefixes in front of the base style,
// e.g. ["with emphasis"] + "happily" -> "with emphasis, happily".
func ComposeStyle(modifiers []string, base string) string {
	if len(modifiers) == 0 {
		return base
	}

	parts := make([]string, 0, len(modifiers)+1)
	parts = append(parts, modifiers...)
	parts = append(parts, base)

	return strings.Join(parts, ", ")
}
