package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/client/monitor"
)

func (a *App) showSettings(ctx context.Context) {
	if a.requireUser() == "" {
		return
	}

	s, ok := a.mirror.Settings()
	if !ok {
		s = models.DefaultSettings()
	}

	fmt.Printf("voice alerts:          %t\n", s.VoiceAlertsEnabled)
	fmt.Printf("sound type:            %s\n", s.SoundType)
	fmt.Printf("alert threshold:       %d bad samples\n", s.AlertThreshold)
	fmt.Printf("volume:                %d%%\n", s.Volume)
	fmt.Printf("desktop notifications: %t\n", s.DesktopNotifications)
}

// saveSettings walks the user through each setting (Enter keeps the
// current value) and persists the result.
func (a *App) saveSettings(ctx context.Context) {
	userID := a.requireUser()
	if userID == "" {
		return
	}

	s, ok := a.mirror.Settings()
	if !ok {
		s = models.DefaultSettings()
	}

	s.VoiceAlertsEnabled = a.askBool(fmt.Sprintf("Voice alerts [%t]", s.VoiceAlertsEnabled), s.VoiceAlertsEnabled)
	s.SoundType = a.askSoundType(fmt.Sprintf("Sound type voice|beep [%s]", s.SoundType), s.SoundType)
	s.AlertThreshold = a.askInt(fmt.Sprintf("Alert threshold 1-20 [%d]", s.AlertThreshold), s.AlertThreshold, 1, 20)
	s.Volume = a.askInt(fmt.Sprintf("Volume 0-100 [%d]", s.Volume), s.Volume, 0, 100)
	s.DesktopNotifications = a.askBool(fmt.Sprintf("Desktop notifications [%t]", s.DesktopNotifications), s.DesktopNotifications)

	err := a.coord.SaveSettings(ctx, userID, s)
	switch {
	case errors.Is(err, monitor.ErrInFlight):
		fmt.Println("A settings save is already in progress.")
	case err != nil:
		fmt.Printf("Failed to save settings: %s\n", err.Error())
	default:
		fmt.Println("Settings saved")
	}
}

func (a *App) askBool(prompt string, current bool) bool {
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil || text == "" {
		return current
	}
	v, err := strconv.ParseBool(text)
	if err != nil {
		fmt.Println("Keeping current value")
		return current
	}
	return v
}

func (a *App) askInt(prompt string, current, min, max int) int {
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil || text == "" {
		return current
	}
	v, err := strconv.Atoi(text)
	if err != nil || v < min || v > max {
		fmt.Println("Keeping current value")
		return current
	}
	return v
}

func (a *App) askSoundType(prompt string, current models.SoundType) models.SoundType {
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil || text == "" {
		return current
	}
	switch models.SoundType(text) {
	case models.SoundVoice, models.SoundBeep:
		return models.SoundType(text)
	default:
		fmt.Println("Keeping current value")
		return current
	}
}
