package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spineguard/spinectl/internal/client/models"
)

func TestMirrorStatusReplacedWholesale(t *testing.T) {
	m := NewMirror()
	m.SetStatus(models.MonitoringStatus{Active: true, CurrentPosture: models.PostureGood})
	m.SetStatus(models.MonitoringStatus{Active: true})

	// the second status carried no posture, so none remains
	assert.Empty(t, m.Status().CurrentPosture)
}

func TestMirrorSetActiveKeepsPosture(t *testing.T) {
	m := NewMirror()
	m.SetStatus(models.MonitoringStatus{Active: false, CurrentPosture: models.PostureBad})
	m.SetActive(true)

	s := m.Status()
	assert.True(t, s.Active)
	assert.Equal(t, models.PostureBad, s.CurrentPosture)
}

func TestMirrorSettingsLoadedFlag(t *testing.T) {
	m := NewMirror()
	_, loaded := m.Settings()
	assert.False(t, loaded)

	m.SetSettings(models.DefaultSettings())
	got, loaded := m.Settings()
	assert.True(t, loaded)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestMirrorModelsCopiedOut(t *testing.T) {
	m := NewMirror()
	m.SetModels([]models.Model{{ID: "m1", Name: "first"}})

	list := m.Models()
	require.Len(t, list, 1)
	list[0].Name = "mutated"

	assert.Equal(t, "first", m.Models()[0].Name)
}

func TestMirrorReset(t *testing.T) {
	m := NewMirror()
	m.SetStatus(models.MonitoringStatus{Active: true})
	m.SetSettings(models.DefaultSettings())
	m.SetModels([]models.Model{{ID: "m1"}})

	m.Reset()

	assert.False(t, m.Status().Active)
	_, loaded := m.Settings()
	assert.False(t, loaded)
	assert.Empty(t, m.Models())
}
