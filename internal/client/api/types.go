package api

import (
	"time"

	"github.com/spineguard/spinectl/internal/client/models"
)

// Wire records follow the backend's snake_case field names.

// RegisterRequest carries the profile fields for a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Profile is the server-side view of an account, fetched on refresh.
type Profile struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type userIDRequest struct {
	UserID string `json:"user_id"`
}

type calibrateRequest struct {
	UserID  string `json:"user_id"`
	Samples int    `json:"samples"`
}

type monitoringStatusResponse struct {
	Active         bool   `json:"active"`
	UserID         string `json:"user_id"`
	CurrentPosture string `json:"current_posture"`
}

func (r monitoringStatusResponse) toModel() models.MonitoringStatus {
	return models.MonitoringStatus{
		Active:         r.Active,
		CurrentPosture: models.Posture(r.CurrentPosture),
	}
}

type modelRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Accuracy  float64 `json:"accuracy"`
	Size      string  `json:"size"`
	CreatedAt string  `json:"created_at"`
	IsActive  bool    `json:"is_active"`
}

func (r modelRecord) toModel() models.Model {
	return models.Model{
		ID:              r.ID,
		Name:            r.Name,
		AccuracyPercent: r.Accuracy,
		Size:            r.Size,
		CreatedAt:       parseTimestamp(r.CreatedAt),
		IsActive:        r.IsActive,
	}
}

// parseTimestamp accepts the formats the backend has been seen to emit.
// An unparseable value yields the zero time rather than a failed call.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC1123, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type errorResponse struct {
	Error string `json:"error"`
}
