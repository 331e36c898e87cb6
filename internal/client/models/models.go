// Package models defines the client-side domain entities mirrored from the
// SpineGuard backend: the authenticated identity, monitoring status,
// per-user settings, and trained posture models.
package models

import "time"

// Posture is the classification reported by the active model.
type Posture string

const (
	PostureGood Posture = "good"
	PostureBad  Posture = "bad"
)

// Identity is the authenticated user held by the session manager.
// It is replaced wholesale on every successful auth operation and
// destroyed on logout.
type Identity struct {
	ID          string
	Username    string
	DisplayName string
	Token       string
}

// MonitoringStatus mirrors the backend's live monitoring state. It is
// transient: every poll tick replaces the whole value, never individual
// fields. CurrentPosture is empty when the backend reports none.
type MonitoringStatus struct {
	Active         bool
	CurrentPosture Posture
}

// SoundType selects how a posture alert is played.
type SoundType string

const (
	SoundVoice SoundType = "voice"
	SoundBeep  SoundType = "beep"
)

// Settings holds per-user alert preferences. Loaded once per session,
// mutated locally, persisted only on an explicit save.
type Settings struct {
	VoiceAlertsEnabled   bool      `json:"voice_alerts"`
	SoundType            SoundType `json:"sound_type"`
	AlertThreshold       int       `json:"alert_threshold"`
	Volume               int       `json:"volume"`
	DesktopNotifications bool      `json:"notifications"`
}

// DefaultSettings are the values the backend assigns to a new account.
func DefaultSettings() Settings {
	return Settings{
		VoiceAlertsEnabled:   true,
		SoundType:            SoundVoice,
		AlertThreshold:       10,
		Volume:               80,
		DesktopNotifications: true,
	}
}

// Model describes one trained posture model. The backend intends at most
// one model per user with IsActive set, but the client must tolerate a
// mirror where none or several are marked active.
type Model struct {
	ID              string
	Name            string
	AccuracyPercent float64
	Size            string
	CreatedAt       time.Time
	IsActive        bool
}

// ActiveModel returns the first model marked active, or nil.
func ActiveModel(models []Model) *Model {
	for i := range models {
		if models[i].IsActive {
			return &models[i]
		}
	}
	return nil
}
