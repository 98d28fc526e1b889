// Package settings persists the small set of player preferences as a yaml
// blob in gdata's cross-platform storage. A nil gdata manager degrades to
// in-memory settings without error.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Settings are the persisted preferences.
type Settings struct {
	SoundEnabled    bool `yaml:"soundEnabled"`
	ShowFPS         bool `yaml:"showFPS"`
	SelectedVehicle int  `yaml:"selectedVehicle"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		SoundEnabled:    true,
		ShowFPS:         false,
		SelectedVehicle: 0,
	}
}

// Manager loads and saves settings.
type Manager struct {
	store    *gdata.Manager
	settings Settings
}

// NewManager loads saved settings if any exist. A load failure is not fatal;
// defaults are used.
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{
		store:    store,
		settings: Defaults(),
	}
	if err := m.load(); err != nil {
		log.Warn().Err(err).Msg("failed to load settings, using defaults")
	}
	return m
}

func (m *Manager) load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	m.settings = loaded
	return nil
}

// Save writes the current settings. In degraded mode it succeeds without
// persisting.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get returns the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

// Set replaces the current settings and saves them.
func (m *Manager) Set(s Settings) {
	m.settings = s
	if err := m.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save settings")
	}
}
