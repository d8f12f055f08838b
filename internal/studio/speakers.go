package studio

import "github.com/example/voice-studio/internal/script"

// RefreshAssignments recomputes the speaker-to-voice map for a dialogue
// script after an edit. Existing assignments are preserved by name, newly
// appearing speakers get defaultVoiceID, and speakers no longer present are
// dropped.
func RefreshAssignments(text string, existing map[string]string, defaultVoiceID string) map[string]string {
	next := make(map[string]string)
	for _, name := range script.SpeakerNames(text) {
		if voiceID, ok := existing[name]; ok {
			next[name] = voiceID
		} else {
			next[name] = defaultVoiceID
		}
	}

	return next
}
