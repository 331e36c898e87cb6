// Package api is the single choke point for all outbound calls to the
// SpineGuard backend. Every remote capability is one typed operation;
// the stored credential is injected into each request and every failure
// is normalized into *Error. The client performs exactly one network
// round trip per call: no retries, no caching, no deduplication.
package api

import (
	"context"

	"github.com/spineguard/spinectl/internal/client/models"
)

// CalibrationKind selects which posture class a calibration run records.
type CalibrationKind string

const (
	CalibrateGood CalibrationKind = "good"
	CalibrateBad  CalibrationKind = "bad"
)

// Client defines the remote operations of the monitoring backend.
//
// Register and Login persist the returned token through the credential
// store before the identity is handed to the caller, so a crash right
// after a successful auth call can never lose the token.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (models.Identity, error)
	Login(ctx context.Context, username, password string) (models.Identity, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)

	StartMonitoring(ctx context.Context, userID string) error
	StopMonitoring(ctx context.Context) error
	GetMonitoringStatus(ctx context.Context) (models.MonitoringStatus, error)

	Calibrate(ctx context.Context, kind CalibrationKind, userID string, samples int) error
	TrainModel(ctx context.Context, userID string) error
	ListModels(ctx context.Context, userID string) ([]models.Model, error)
	ActivateModel(ctx context.Context, modelID, userID string) error
	DeleteModel(ctx context.Context, modelID, userID string) error

	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	UpdateSettings(ctx context.Context, userID string, settings models.Settings) error

	// SetToken installs the credential injected into subsequent requests,
	// superseding any prior one. ClearToken removes it.
	SetToken(token string)
	ClearToken()
}
