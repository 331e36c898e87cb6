package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/client/monitor"
)

func (a *App) toggleMonitoring(ctx context.Context) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	err := a.coord.ToggleMonitoring(ctx, userID)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("A monitoring toggle is already in progress.")
	case err != nil:
		fmt.Printf("Failed to toggle monitoring: %s\n", err.Error())
	case a.mirror.Status().Active:
		fmt.Println("Monitoring started")
	default:
		fmt.Println("Monitoring stopped")
	}
}

// setMonitoring is the explicit form of toggle: it only issues the call
// when the mirrored state differs from the requested one.
func (a *App) setMonitoring(ctx context.Context, active bool) {
	if a.requireUser() == "" {
		return
	}
	if a.mirror.Status().Active == active {
		if active {
			fmt.Println("Monitoring is already running")
		} else {
			fmt.Println("Monitoring is not running")
		}
		return
	}
	a.toggleMonitoring(ctx)
}

func (a *App) calibrate(ctx context.Context, kind string) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	var ck api.CalibrationKind
	switch kind {
	case "good":
		ck = api.CalibrateGood
	case "bad":
		ck = api.CalibrateBad
	default:
		fmt.Println("Usage: calibrate good|bad")
		return
	}

	fmt.Printf("Recording %d %s posture samples, hold the position...\n", monitor.CalibrationSamples, kind)
	err := a.coord.Calibrate(ctx, ck, userID)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("Calibration is already in progress.")
	case err != nil:
		fmt.Printf("Calibration failed: %s\n", err.Error())
	default:
		fmt.Println("Calibration completed")
	}
}

func (a *App) train(ctx context.Context) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	fmt.Println("Training model, this can take a while...")
	err := a.coord.TrainModel(ctx, userID)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("Training is already in progress.")
	case err != nil:
		fmt.Printf("Training failed: %s\n", err.Error())
	default:
		fmt.Println("Training completed")
	}
}
