package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/logging"
)

// stubClient implements api.Client with per-operation overrides and call
// counters.
type stubClient struct {
	mu    sync.Mutex
	calls map[string]int

	startFn    func(ctx context.Context) error
	stopFn     func(ctx context.Context) error
	statusFn   func(ctx context.Context) (models.MonitoringStatus, error)
	calibrate  func(ctx context.Context, kind api.CalibrationKind, samples int) error
	trainFn    func(ctx context.Context) error
	listFn     func(ctx context.Context) ([]models.Model, error)
	activateFn func(ctx context.Context, modelID string) error
	deleteFn   func(ctx context.Context, modelID string) error
	getSetFn   func(ctx context.Context) (models.Settings, error)
	updSetFn   func(ctx context.Context, s models.Settings) error
}

func newStubClient() *stubClient {
	return &stubClient{calls: make(map[string]int)}
}

func (s *stubClient) record(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

func (s *stubClient) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubClient) Register(ctx context.Context, req api.RegisterRequest) (models.Identity, error) {
	return models.Identity{}, errors.New("not supported")
}

func (s *stubClient) Login(ctx context.Context, username, password string) (models.Identity, error) {
	return models.Identity{}, errors.New("not supported")
}

func (s *stubClient) GetProfile(ctx context.Context, userID string) (api.Profile, error) {
	return api.Profile{}, errors.New("not supported")
}

func (s *stubClient) StartMonitoring(ctx context.Context, userID string) error {
	s.record("start")
	if s.startFn != nil {
		return s.startFn(ctx)
	}
	return nil
}

func (s *stubClient) StopMonitoring(ctx context.Context) error {
	s.record("stop")
	if s.stopFn != nil {
		return s.stopFn(ctx)
	}
	return nil
}

func (s *stubClient) GetMonitoringStatus(ctx context.Context) (models.MonitoringStatus, error) {
	s.record("status")
	if s.statusFn != nil {
		return s.statusFn(ctx)
	}
	return models.MonitoringStatus{}, nil
}

func (s *stubClient) Calibrate(ctx context.Context, kind api.CalibrationKind, userID string, samples int) error {
	s.record("calibrate-" + string(kind))
	if s.calibrate != nil {
		return s.calibrate(ctx, kind, samples)
	}
	return nil
}

func (s *stubClient) TrainModel(ctx context.Context, userID string) error {
	s.record("train")
	if s.trainFn != nil {
		return s.trainFn(ctx)
	}
	return nil
}

func (s *stubClient) ListModels(ctx context.Context, userID string) ([]models.Model, error) {
	s.record("list")
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubClient) ActivateModel(ctx context.Context, modelID, userID string) error {
	s.record("activate")
	if s.activateFn != nil {
		return s.activateFn(ctx, modelID)
	}
	return nil
}

func (s *stubClient) DeleteModel(ctx context.Context, modelID, userID string) error {
	s.record("delete")
	if s.deleteFn != nil {
		return s.deleteFn(ctx, modelID)
	}
	return nil
}

func (s *stubClient) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	s.record("get-settings")
	if s.getSetFn != nil {
		return s.getSetFn(ctx)
	}
	return models.DefaultSettings(), nil
}

func (s *stubClient) UpdateSettings(ctx context.Context, userID string, settings models.Settings) error {
	s.record("update-settings")
	if s.updSetFn != nil {
		return s.updSetFn(ctx, settings)
	}
	return nil
}

func (s *stubClient) SetToken(token string) {}
func (s *stubClient) ClearToken()           {}

var _ api.Client = (*stubClient)(nil)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestCoordinator(client api.Client) (*Coordinator, *Mirror) {
	mirror := NewMirror()
	return NewCoordinator(client, mirror, testLogger()), mirror
}

func TestToggleStartsWhenInactive(t *testing.T) {
	client := newStubClient()
	c, mirror := newTestCoordinator(client)

	require.NoError(t, c.ToggleMonitoring(context.Background(), "7"))

	assert.Equal(t, 1, client.callCount("start"))
	assert.Equal(t, 0, client.callCount("stop"))
	assert.True(t, mirror.Status().Active)
}

func TestToggleStopsWhenActive(t *testing.T) {
	client := newStubClient()
	c, mirror := newTestCoordinator(client)
	mirror.SetStatus(models.MonitoringStatus{Active: true, CurrentPosture: models.PostureGood})

	require.NoError(t, c.ToggleMonitoring(context.Background(), "7"))

	assert.Equal(t, 1, client.callCount("stop"))
	assert.False(t, mirror.Status().Active)
	// only the flag flips; the rest of the status waits for the next poll
	assert.Equal(t, models.PostureGood, mirror.Status().CurrentPosture)
}

func TestToggleFailureLeavesMirror(t *testing.T) {
	client := newStubClient()
	client.startFn = func(ctx context.Context) error { return errors.New("backend down") }
	c, mirror := newTestCoordinator(client)

	err := c.ToggleMonitoring(context.Background(), "7")
	require.Error(t, err)

	assert.False(t, mirror.Status().Active)
	st := c.State(ActionMonitoringToggle)
	assert.False(t, st.InFlight)
	assert.Error(t, st.LastError)
}

func TestSingleFlightRejectsSecondCall(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := newStubClient()
	client.startFn = func(ctx context.Context) error {
		close(entered)
		<-release
		return nil
	}
	c, _ := newTestCoordinator(client)

	done := make(chan error, 1)
	go func() { done <- c.ToggleMonitoring(context.Background(), "7") }()
	<-entered

	// the class is busy: reject, never queue
	err := c.ToggleMonitoring(context.Background(), "7")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.True(t, c.State(ActionMonitoringToggle).InFlight)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, client.callCount("start"))
	assert.False(t, c.State(ActionMonitoringToggle).InFlight)
}

func TestDistinctClassesRunConcurrently(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := newStubClient()
	client.calibrate = func(ctx context.Context, kind api.CalibrationKind, samples int) error {
		if kind == api.CalibrateGood {
			close(entered)
			<-release
		}
		return nil
	}
	c, _ := newTestCoordinator(client)

	done := make(chan error, 1)
	go func() { done <- c.Calibrate(context.Background(), api.CalibrateGood, "7") }()
	<-entered

	// a different class is not blocked by the running one
	require.NoError(t, c.Calibrate(context.Background(), api.CalibrateBad, "7"))

	close(release)
	require.NoError(t, <-done)
}

func TestCalibrateSendsFixedSampleCount(t *testing.T) {
	var gotSamples int
	client := newStubClient()
	client.calibrate = func(ctx context.Context, kind api.CalibrationKind, samples int) error {
		gotSamples = samples
		return nil
	}
	c, _ := newTestCoordinator(client)

	require.NoError(t, c.Calibrate(context.Background(), api.CalibrateGood, "7"))
	assert.Equal(t, CalibrationSamples, gotSamples)
	assert.Equal(t, 200, gotSamples)
}

func TestNewAttemptClearsPreviousError(t *testing.T) {
	client := newStubClient()
	client.trainFn = func(ctx context.Context) error { return errors.New("no calibration data") }
	c, _ := newTestCoordinator(client)

	require.Error(t, c.TrainModel(context.Background(), "7"))
	require.Error(t, c.State(ActionTrainModel).LastError)

	client.trainFn = nil
	require.NoError(t, c.TrainModel(context.Background(), "7"))
	assert.NoError(t, c.State(ActionTrainModel).LastError)
}

func TestTrainRefetchesModels(t *testing.T) {
	client := newStubClient()
	client.listFn = func(ctx context.Context) ([]models.Model, error) {
		return []models.Model{{ID: "m1", Name: "fresh", IsActive: true}}, nil
	}
	c, mirror := newTestCoordinator(client)

	require.NoError(t, c.TrainModel(context.Background(), "7"))

	assert.Equal(t, 1, client.callCount("train"))
	assert.Equal(t, 1, client.callCount("list"))
	list := mirror.Models()
	require.Len(t, list, 1)
	assert.Equal(t, "m1", list[0].ID)
}

func TestActivateRefetchesInsteadOfPatching(t *testing.T) {
	client := newStubClient()
	client.listFn = func(ctx context.Context) ([]models.Model, error) {
		return []models.Model{
			{ID: "m1", IsActive: false},
			{ID: "m2", IsActive: true},
		}, nil
	}
	c, mirror := newTestCoordinator(client)
	mirror.SetModels([]models.Model{{ID: "m1", IsActive: true}, {ID: "m2", IsActive: false}})

	require.NoError(t, c.ActivateModel(context.Background(), "m2", "7"))

	active := models.ActiveModel(mirror.Models())
	require.NotNil(t, active)
	assert.Equal(t, "m2", active.ID)
}

func TestDeleteFailureLeavesModelList(t *testing.T) {
	client := newStubClient()
	client.deleteFn = func(ctx context.Context, modelID string) error {
		return errors.New("cannot delete active model")
	}
	c, mirror := newTestCoordinator(client)
	before := []models.Model{{ID: "m1", IsActive: true}}
	mirror.SetModels(before)

	err := c.DeleteModel(context.Background(), "m1", "7")
	require.Error(t, err)

	assert.Equal(t, before, mirror.Models())
	assert.Equal(t, 0, client.callCount("list"))
	assert.Error(t, c.State(ActionDeleteModel).LastError)
}

func TestSaveSettingsMirrorsOnSuccessOnly(t *testing.T) {
	client := newStubClient()
	c, mirror := newTestCoordinator(client)

	want := models.Settings{SoundType: models.SoundBeep, AlertThreshold: 5, Volume: 30}
	require.NoError(t, c.SaveSettings(context.Background(), "7", want))

	got, loaded := mirror.Settings()
	require.True(t, loaded)
	assert.Equal(t, want, got)

	client.updSetFn = func(ctx context.Context, s models.Settings) error { return errors.New("boom") }
	changed := want
	changed.Volume = 100
	require.Error(t, c.SaveSettings(context.Background(), "7", changed))

	got, _ = mirror.Settings()
	assert.Equal(t, want, got, "failed save must not touch the mirror")
}

func TestLoadSessionData(t *testing.T) {
	client := newStubClient()
	client.listFn = func(ctx context.Context) ([]models.Model, error) {
		return []models.Model{{ID: "m1"}}, nil
	}
	c, mirror := newTestCoordinator(client)

	require.NoError(t, c.LoadSessionData(context.Background(), "7"))

	settings, loaded := mirror.Settings()
	require.True(t, loaded)
	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Len(t, mirror.Models(), 1)
}

func TestLoadSessionDataStopsOnSettingsFailure(t *testing.T) {
	client := newStubClient()
	client.getSetFn = func(ctx context.Context) (models.Settings, error) {
		return models.Settings{}, errors.New("backend down")
	}
	c, mirror := newTestCoordinator(client)

	require.Error(t, c.LoadSessionData(context.Background(), "7"))
	_, loaded := mirror.Settings()
	assert.False(t, loaded)
	assert.Equal(t, 0, client.callCount("list"))
}

func TestStateUnknownClassIsZero(t *testing.T) {
	c, _ := newTestCoordinator(newStubClient())
	st := c.State(ActionSaveSettings)
	assert.False(t, st.InFlight)
	assert.NoError(t, st.LastError)
}
