package monitor

import (
	"context"
	"errors"
	"sync"

	"github.com/spineguard/spinectl/internal/client/api"
	"github.com/spineguard/spinectl/internal/client/models"
	"github.com/spineguard/spinectl/internal/logging"
	"github.com/spineguard/spinectl/internal/obs"
)

// ActionClass identifies one family of user-triggered remote writes.
// At most one invocation per class is ever in flight.
type ActionClass string

const (
	ActionMonitoringToggle ActionClass = "monitoring-toggle"
	ActionCalibrateGood    ActionClass = "calibrate-good"
	ActionCalibrateBad     ActionClass = "calibrate-bad"
	ActionTrainModel       ActionClass = "train-model"
	ActionActivateModel    ActionClass = "activate-model"
	ActionDeleteModel      ActionClass = "delete-model"
	ActionSaveSettings     ActionClass = "save-settings"
)

// CalibrationSamples is the fixed sample count sent with every
// calibration run. Policy constant, not user-configurable.
const CalibrationSamples = 200

// ErrInFlight is returned when an action class already has an invocation
// running. The caller's attempt is rejected, not queued.
var ErrInFlight = errors.New("action already in flight")

// OperationState is the consumer-visible status of one action class.
type OperationState struct {
	InFlight  bool
	LastError error
}

// Coordinator serializes state-changing calls per action class and keeps
// the mirror consistent: optimistic toggle flips, re-fetch-on-write for
// model operations, and no mirror change on failure.
type Coordinator struct {
	client api.Client
	mirror *Mirror
	log    logging.Logger

	mu  sync.Mutex
	ops map[ActionClass]*OperationState
}

func NewCoordinator(client api.Client, mirror *Mirror, log logging.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		mirror: mirror,
		log:    log,
		ops:    make(map[ActionClass]*OperationState),
	}
}

// State returns the operation state for class. Classes never invoked
// report a zero state.
func (c *Coordinator) State(class ActionClass) OperationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.ops[class]; ok {
		return *st
	}
	return OperationState{}
}

// begin enforces single-flight: it marks class in flight and clears its
// previous error, or reports ErrInFlight without side effects.
func (c *Coordinator) begin(class ActionClass) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.ops[class]
	if !ok {
		st = &OperationState{}
		c.ops[class] = st
	}
	if st.InFlight {
		obs.ActionRejected(string(class))
		return ErrInFlight
	}
	st.InFlight = true
	st.LastError = nil
	return nil
}

// finish is the single exit path: it always clears the in-flight flag
// and records err, if any, for the class.
func (c *Coordinator) finish(ctx context.Context, class ActionClass, err error) {
	c.mu.Lock()
	st := c.ops[class]
	st.InFlight = false
	st.LastError = err
	c.mu.Unlock()

	obs.Action(string(class), err)
	if err != nil && !errors.Is(err, ErrInFlight) {
		c.log.Warn(ctx, "action failed", "class", string(class), "err", err)
	}
}

// ToggleMonitoring starts monitoring when the mirror shows it inactive
// and stops it otherwise. On success the active flag flips optimistically
// to the requested target; the next poll reconciles it.
func (c *Coordinator) ToggleMonitoring(ctx context.Context, userID string) error {
	if err := c.begin(ActionMonitoringToggle); err != nil {
		return err
	}

	target := !c.mirror.Status().Active

	var err error
	if target {
		err = c.client.StartMonitoring(ctx, userID)
	} else {
		err = c.client.StopMonitoring(ctx)
	}
	if err == nil {
		c.mirror.SetActive(target)
	}

	c.finish(ctx, ActionMonitoringToggle, err)
	return err
}

// Calibrate records posture samples of the given kind.
func (c *Coordinator) Calibrate(ctx context.Context, kind api.CalibrationKind, userID string) error {
	class := ActionCalibrateGood
	if kind == api.CalibrateBad {
		class = ActionCalibrateBad
	}
	if err := c.begin(class); err != nil {
		return err
	}

	err := c.client.Calibrate(ctx, kind, userID, CalibrationSamples)
	c.finish(ctx, class, err)
	return err
}

// TrainModel trains a new model from the recorded calibration data, then
// re-fetches the model list.
func (c *Coordinator) TrainModel(ctx context.Context, userID string) error {
	if err := c.begin(ActionTrainModel); err != nil {
		return err
	}

	err := c.client.TrainModel(ctx, userID)
	if err == nil {
		err = c.refreshModels(ctx, userID)
	}

	c.finish(ctx, ActionTrainModel, err)
	return err
}

// ActivateModel marks a model active and re-fetches the list rather than
// patching it locally.
func (c *Coordinator) ActivateModel(ctx context.Context, modelID, userID string) error {
	if err := c.begin(ActionActivateModel); err != nil {
		return err
	}

	err := c.client.ActivateModel(ctx, modelID, userID)
	if err == nil {
		err = c.refreshModels(ctx, userID)
	}

	c.finish(ctx, ActionActivateModel, err)
	return err
}

// DeleteModel removes a model. On failure the mirrored list stays as it
// was; no partial removal ever happens.
func (c *Coordinator) DeleteModel(ctx context.Context, modelID, userID string) error {
	if err := c.begin(ActionDeleteModel); err != nil {
		return err
	}

	err := c.client.DeleteModel(ctx, modelID, userID)
	if err == nil {
		err = c.refreshModels(ctx, userID)
	}

	c.finish(ctx, ActionDeleteModel, err)
	return err
}

// SaveSettings persists settings remotely and mirrors the saved value on
// success.
func (c *Coordinator) SaveSettings(ctx context.Context, userID string, settings models.Settings) error {
	if err := c.begin(ActionSaveSettings); err != nil {
		return err
	}

	err := c.client.UpdateSettings(ctx, userID, settings)
	if err == nil {
		c.mirror.SetSettings(settings)
	}

	c.finish(ctx, ActionSaveSettings, err)
	return err
}

// LoadSessionData does the once-per-session read of settings and models
// into the mirror. It is a plain read path, not an action class.
func (c *Coordinator) LoadSessionData(ctx context.Context, userID string) error {
	settings, err := c.client.GetSettings(ctx, userID)
	if err != nil {
		return err
	}
	c.mirror.SetSettings(settings)

	return c.refreshModels(ctx, userID)
}

// refreshModels replaces the mirrored model list wholesale with the
// remote one. Re-fetch-on-write keeps the client free of merge logic.
func (c *Coordinator) refreshModels(ctx context.Context, userID string) error {
	list, err := c.client.ListModels(ctx, userID)
	if err != nil {
		return err
	}
	c.mirror.SetModels(list)
	return nil
}
