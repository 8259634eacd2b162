package events

import "encoding/json"

// SettingsChangedEvent is published after a successful set operation so other
// components can react to a settings change.
type SettingsChangedEvent struct {
	// Extension is the settings domain name (e.g. "kubernetes").
	Extension string `json:"extension"`
	// Version is the version tag of the model that accepted the value.
	Version string `json:"version"`
	// Value is the value that was accepted for persistence.
	Value json.RawMessage `json:"value"`
}
