// Package monitor keeps a local mirror of remote monitoring state fresh
// via periodic polling and serializes user-triggered state-changing calls
// with single-flight guarantees. Mirrored values are never a source of
// truth: every authoritative read replaces them wholesale.
package monitor

import (
	"sync"

	"github.com/spineguard/spinectl/internal/client/models"
)

// Mirror is the client-held copy of server-authoritative data for the
// current session: live monitoring status, settings, and the model list.
type Mirror struct {
	mu             sync.RWMutex
	status         models.MonitoringStatus
	settings       models.Settings
	settingsLoaded bool
	models         []models.Model
}

func NewMirror() *Mirror {
	return &Mirror{}
}

func (m *Mirror) Status() models.MonitoringStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// SetStatus replaces the mirrored status wholesale.
func (m *Mirror) SetStatus(s models.MonitoringStatus) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}

// SetActive optimistically flips only the active flag; the next poll
// tick overwrites it with the authoritative value.
func (m *Mirror) SetActive(active bool) {
	m.mu.Lock()
	m.status.Active = active
	m.mu.Unlock()
}

func (m *Mirror) Settings() (models.Settings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, m.settingsLoaded
}

func (m *Mirror) SetSettings(s models.Settings) {
	m.mu.Lock()
	m.settings = s
	m.settingsLoaded = true
	m.mu.Unlock()
}

func (m *Mirror) Models() []models.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Model, len(m.models))
	copy(out, m.models)
	return out
}

func (m *Mirror) SetModels(list []models.Model) {
	m.mu.Lock()
	m.models = list
	m.mu.Unlock()
}

// Reset drops everything mirrored for the session. Called on logout.
func (m *Mirror) Reset() {
	m.mu.Lock()
	m.status = models.MonitoringStatus{}
	m.settings = models.Settings{}
	m.settingsLoaded = false
	m.models = nil
	m.mu.Unlock()
}
