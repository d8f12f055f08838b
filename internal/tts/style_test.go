package tts

import "testing"

func TestResolveStyle(t *testing.T) {
	cases := []struct {
		name        string
		emotion     string
		customStyle string
		want        string
	}{
		{"named emotion passes through", "happily", "", "happily"},
		{"custom uses supplied text", EmotionCustom, "like a pirate", "like a pirate"},
		{"custom with blank text falls back", EmotionCustom, "   ", StyleNeutral},
		{"custom with empty text falls back", EmotionCustom, "", StyleNeutral},
		{"empty emotion falls back", "", "ignored", StyleNeutral},
		{"custom text ignored for named emotion", "sadly", "like a pirate", "sadly"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveStyle(tc.emotion, tc.customStyle); got != tc.want {
				t.Errorf("ResolveStyle(%q, %q) = %q, want %q", tc.emotion, tc.customStyle, got, tc.want)
			}
		})
	}
}

func TestComposeStyle(t *testing.T) {
	cases := []struct {
		name      string
		modifiers []string
		base      string
		want      string
	}{
		{"no modifiers", nil, "happily", "happily"},
		{"one modifier", []string{"with emphasis"}, "happily", "with emphasis, happily"},
		{"two modifiers keep order", []string{"with emphasis", "speaking fast"}, StyleNeutral, "with emphasis, speaking fast, neutrally"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComposeStyle(tc.modifiers, tc.base); got != tc.want {
				t.Errorf("ComposeStyle(%v, %q) = %q, want %q", tc.modifiers, tc.base, got, tc.want)
			}
		})
	}
}

func TestEmotions(t *testing.T) {
	emotions := Emotions()
	if len(emotions) == 0 {
		t.Fatal("empty emotion catalog")
	}

	seen := make(map[string]struct{})
	hasCustom := false
	for _, e := range emotions {
		if e.Name == "" || e.Value == "" {
			t.Errorf("emotion with blank field: %+v", e)
		}
		if _, dup := seen[e.Value]; dup {
			t.Errorf("duplicate emotion value %q", e.Value)
		}
		seen[e.Value] = struct{}{}
		if e.Value == EmotionCustom {
			hasCustom = true
		}
	}
	if !hasCustom {
		t.Error("catalog is missing the custom sentinel entry")
	}
	if emotions[0].Value != StyleNeutral {
		t.Errorf("first emotion is %q, want the neutral default", emotions[0].Value)
	}
}
