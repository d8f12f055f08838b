package tts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Voice is one selectable voice. A custom voice is a saved preset over a
// base voice, never a new acoustic model: synthesis always resolves to
// BaseVoiceID (or the voice's own ID when none is set).
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	IsCustom    bool   `json:"isCustom,omitempty"`
	BaseVoiceID string `json:"baseVoiceId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// BuiltinVoices returns the built-in voice catalog.
func BuiltinVoices() []Voice {
	return []Voice{
		{ID: "Kore", Name: "Kore", Description: "A clear, standard female voice.", Category: "Standard Voices"},
		{ID: "Puck", Name: "Puck", Description: "A deep, resonant male voice.", Category: "Standard Voices"},
		{ID: "Charon", Name: "Charon", Description: "A mature, authoritative male voice.", Category: "Standard Voices"},
		{ID: "Fenrir", Name: "Fenrir", Description: "A strong, assertive female voice.", Category: "Standard Voices"},
		{ID: "Zephyr", Name: "Zephyr", Description: "A gentle, soothing female voice.", Category: "Standard Voices"},
		{ID: "br_clara", Name: "Clara", Description: "Voz feminina clara e expressiva para Português.", BaseVoiceID: "Kore", Category: "Vozes Brasileiras (PT-BR)"},
		{ID: "br_sofia", Name: "Sofia", Description: "Voz feminina forte e assertiva para Português.", BaseVoiceID: "Fenrir", Category: "Vozes Brasileiras (PT-BR)"},
		{ID: "br_laura", Name: "Laura", Description: "Voz feminina suave e calmante para Português.", BaseVoiceID: "Zephyr", Category: "Vozes Brasileiras (PT-BR)"},
		{ID: "br_mateus", Name: "Mateus", Description: "Voz masculina grave e ressonante para Português.", BaseVoiceID: "Puck", Category: "Vozes Brasileiras (PT-BR)"},
		{ID: "br_heitor", Name: "Heitor", Description: "Voz masculina madura e confiante para Português.", BaseVoiceID: "Charon", Category: "Vozes Brasileiras (PT-BR)"},
	}
}

// VoiceManager serves the voice catalog: built-in voices plus custom
// presets loaded from and persisted to a JSON manifest file.
type VoiceManager struct {
	manifestPath string

	mu     sync.Mutex
	voices []Voice
	byID   map[string]Voice
}

// NewVoiceManager builds a manager over the built-in catalog plus the
// custom voices in manifestPath, if the file exists. An empty manifestPath
// keeps the manager in-memory only.
func NewVoiceManager(manifestPath string) (*VoiceManager, error) {
	m := &VoiceManager{
		manifestPath: manifestPath,
		byID:         make(map[string]Voice),
	}

	for _, v := range BuiltinVoices() {
		if err := m.add(v); err != nil {
			return nil, err
		}
	}

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read voice manifest: %w", err)
			}
		} else {
			var custom []Voice
			if err := json.Unmarshal(data, &custom); err != nil {
				return nil, fmt.Errorf("decode voice manifest: %w", err)
			}
			for _, v := range custom {
				if !v.IsCustom {
					return nil, fmt.Errorf("voice manifest entry %q is not a custom voice", v.ID)
				}
				if err := m.add(v); err != nil {
					return nil, err
				}
			}
		}
	}

	return m, nil
}

func (m *VoiceManager) add(v Voice) error {
	if v.ID == "" {
		return errors.New("voice has empty id")
	}
	if _, exists := m.byID[v.ID]; exists {
		return fmt.Errorf("duplicate voice id %q", v.ID)
	}

	m.voices = append(m.voices, v)
	m.byID[v.ID] = v

	return nil
}

// ListVoices returns a copy of the catalog in registration order.
func (m *VoiceManager) ListVoices() []Voice {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Voice(nil), m.voices...)
}

// Lookup returns the voice with the given ID.
func (m *VoiceManager) Lookup(id string) (Voice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.byID[id]
	return v, ok
}

// ResolveSynthesisVoice maps a catalog voice ID to the identifier actually
// sent to the synthesis collaborator: the base voice when one is set,
// otherwise the voice's own ID.
func (m *VoiceManager) ResolveSynthesisVoice(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.byID[id]
	if !ok {
		return "", fmt.Errorf("unknown voice id %q", id)
	}
	if v.BaseVoiceID != "" {
		return v.BaseVoiceID, nil
	}

	return v.ID, nil
}

// SaveCustom creates a custom voice preset over baseID and persists the
// manifest. The preset records the fully-resolved base voice so chains of
// presets never form.
func (m *VoiceManager) SaveCustom(name, baseID string) (Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, ok := m.byID[baseID]
	if !ok {
		return Voice{}, fmt.Errorf("unknown base voice id %q", baseID)
	}

	resolved := base.ID
	if base.BaseVoiceID != "" {
		resolved = base.BaseVoiceID
	}

	v := Voice{
		ID:          fmt.Sprintf("custom_%d", time.Now().UnixMilli()),
		Name:        name,
		Description: fmt.Sprintf("Custom voice based on %s.", base.Name),
		IsCustom:    true,
		BaseVoiceID: resolved,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := m.add(v); err != nil {
		return Voice{}, err
	}
	if err := m.persistLocked(); err != nil {
		return Voice{}, err
	}

	return v, nil
}

// DeleteCustom removes a custom voice preset and persists the manifest.
// Built-in voices cannot be deleted.
func (m *VoiceManager) DeleteCustom(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("unknown voice id %q", id)
	}
	if !v.IsCustom {
		return fmt.Errorf("voice %q is not a custom voice", id)
	}

	delete(m.byID, id)
	for i, existing := range m.voices {
		if existing.ID == id {
			m.voices = append(m.voices[:i], m.voices[i+1:]...)
			break
		}
	}

	return m.persistLocked()
}

// ExportCustom serializes the custom voice presets as JSON.
func (m *VoiceManager) ExportCustom() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return json.MarshalIndent(m.customLocked(), "", "  ")
}

// ImportCustom merges custom voices from exported JSON, skipping entries
// whose IDs already exist. It returns the number of voices added.
func (m *VoiceManager) ImportCustom(data []byte) (int, error) {
	var imported []Voice
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("decode voice import: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	for _, v := range imported {
		if v.ID == "" || v.Name == "" || !v.IsCustom {
			continue
		}
		if _, exists := m.byID[v.ID]; exists {
			continue
		}
		if err := m.add(v); err != nil {
			return added, err
		}
		added++
	}

	if added > 0 {
		if err := m.persistLocked(); err != nil {
			return added, err
		}
	}

	return added, nil
}

func (m *VoiceManager) customLocked() []Voice {
	custom := []Voice{}
	for _, v := range m.voices {
		if v.IsCustom {
			custom = append(custom, v)
		}
	}

	return custom
}

func (m *VoiceManager) persistLocked() error {
	if m.manifestPath == "" {
		return nil
	}

	data, err := json.MarshalIndent(m.customLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode voice manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.manifestPath), 0o755); err != nil {
		return fmt.Errorf("create voice manifest dir: %w", err)
	}
	if err := os.WriteFile(m.manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("write voice manifest: %w", err)
	}

	return nil
}
