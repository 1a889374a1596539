package store

import (
	"fmt"

	"tableflip.dev/diary/pkg/entry"
)

// Settings persists which reflection fields are shown.
type Settings struct {
	kv KV
}

func NewSettings(kv KV) *Settings {
	return &Settings{kv: kv}
}

// Load returns the stored field settings merged over the defaults. A missing
// or unreadable document yields the defaults.
func (s *Settings) Load() entry.FieldSettings {
	data, err := s.kv.Read(settingsKey)
	if err != nil {
		return entry.DefaultFieldSettings()
	}
	return entry.DecodeFieldSettings(data)
}

func (s *Settings) Save(fs entry.FieldSettings) error {
	data, err := fs.Encode()
	if err != nil {
		return err
	}
	if err := s.kv.Write(settingsKey, data); err != nil {
		return fmt.Errorf("store: save settings: %w", err)
	}
	return nil
}
