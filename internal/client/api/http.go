package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/spineguard/spinectl/internal/client/models"
)

// TokenPersister durably records an authenticated identity. Login and
// Register call it before returning their result so the token cannot be
// lost to a crash between a successful auth response and its first use.
type TokenPersister interface {
	SaveIdentity(ctx context.Context, id models.Identity) error
}

// HTTPClient talks JSON over HTTP to the backend at a base URL such as
// http://localhost:5000/api. It holds the current bearer token and
// injects it into every outbound request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   TokenPersister

	mu    sync.RWMutex
	token string
}

// NewHTTPClient creates a client for the given base URL. creds may be nil
// in tests that do not exercise the auth path.
func NewHTTPClient(baseURL string, creds TokenPersister) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doJSON performs one round trip: marshal body (if any), send, and decode
// the response into out (if non-nil). Any failure comes back as *Error.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var er errorResponse
		data, _ := io.ReadAll(res.Body)
		_ = json.Unmarshal(data, &er)
		return statusError(res.StatusCode, strings.TrimSpace(er.Error))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return transportError(err)
	}
	return nil
}

func (c *HTTPClient) finishAuth(ctx context.Context, resp authResponse) (models.Identity, error) {
	id := models.Identity{
		ID:          resp.UserID,
		Username:    resp.Username,
		DisplayName: resp.Username,
		Token:       resp.Token,
	}

	// Persist before the caller can observe success.
	if c.creds != nil {
		if err := c.creds.SaveIdentity(ctx, id); err != nil {
			return models.Identity{}, fmt.Errorf("failed to persist credentials: %w", err)
		}
	}
	c.SetToken(id.Token)
	return id, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (models.Identity, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return models.Identity{}, err
	}
	return c.finishAuth(ctx, resp)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.Identity, error) {
	var resp authResponse
	req := loginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return models.Identity{}, err
	}
	return c.finishAuth(ctx, resp)
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var resp Profile
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+userID, nil, &resp); err != nil {
		return Profile{}, err
	}
	return resp, nil
}

func (c *HTTPClient) StartMonitoring(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/monitoring/start", userIDRequest{UserID: userID}, nil)
}

func (c *HTTPClient) StopMonitoring(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/monitoring/stop", nil, nil)
}

func (c *HTTPClient) GetMonitoringStatus(ctx context.Context) (models.MonitoringStatus, error) {
	var resp monitoringStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/monitoring/status", nil, &resp); err != nil {
		return models.MonitoringStatus{}, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) Calibrate(ctx context.Context, kind CalibrationKind, userID string, samples int) error {
	req := calibrateRequest{UserID: userID, Samples: samples}
	return c.doJSON(ctx, http.MethodPost, "/calibrate/"+string(kind), req, nil)
}

func (c *HTTPClient) TrainModel(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/models/train", userIDRequest{UserID: userID}, nil)
}

func (c *HTTPClient) ListModels(ctx context.Context, userID string) ([]models.Model, error) {
	var records []modelRecord
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+userID+"/models", nil, &records); err != nil {
		return nil, err
	}
	result := make([]models.Model, 0, len(records))
	for _, r := range records {
		result = append(result, r.toModel())
	}
	return result, nil
}

func (c *HTTPClient) ActivateModel(ctx context.Context, modelID, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/models/"+modelID+"/activate", userIDRequest{UserID: userID}, nil)
}

func (c *HTTPClient) DeleteModel(ctx context.Context, modelID, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/models/"+modelID, userIDRequest{UserID: userID}, nil)
}

func (c *HTTPClient) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	var resp models.Settings
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+userID+"/settings", nil, &resp); err != nil {
		return models.Settings{}, err
	}
	return resp, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, userID string, settings models.Settings) error {
	return c.doJSON(ctx, http.MethodPut, "/user/"+userID+"/settings", settings, nil)
}

var _ Client = (*HTTPClient)(nil)
