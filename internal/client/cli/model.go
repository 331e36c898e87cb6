package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/client/monitor"
)

func (a *App) listModels(ctx context.Context) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	list := a.mirror.Models()
	if len(list) == 0 {
		fmt.Println("No models. Calibrate and run 'train' to create one.")
		return
	}

	for _, m := range list {
		marker := " "
		if m.IsActive {
			marker = "*"
		}
		size := m.Size
		if size == "" {
			size = "unknown size"
		}
		fmt.Printf("%s %s  %s  %.1f%% accuracy  %s\n", marker, m.ID, m.Name, m.AccuracyPercent, size)
	}

	if models.ActiveModel(list) == nil {
		fmt.Println("No active model selected")
	}
}

func (a *App) activateModel(ctx context.Context, modelID string) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	err := a.coord.ActivateModel(ctx, modelID, userID)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("A model activation is already in progress.")
	case err != nil:
		fmt.Printf("Failed to activate model: %s\n", err.Error())
	default:
		fmt.Println("Model activated")
	}
}

func (a *App) deleteModel(ctx context.Context, modelID string) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	err := a.coord.DeleteModel(ctx, modelID, userID)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("A model deletion is already in progress.")
	case err != nil:
		fmt.Printf("Failed to delete model: %s\n", err.Error())
	default:
		fmt.Println("Model deleted")
	}
}
