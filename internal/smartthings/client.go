package smartthings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voxgate/voxgate/internal/infrastructure/config"
)

// Switch states understood by the remote service.
const (
	StateOn  = "on"
	StateOff = "off"
)

// Device is one controllable switch as reported by the remote directory.
//
// Devices are fetched fresh on every pipeline run and never persisted;
// a Device is immutable for the duration of one invocation.
type Device struct {
	// ID is the remote service's device identifier.
	ID string `json:"id"`

	// Name is the human-readable device name, matched against speech.
	Name string `json:"name"`

	// Value is the current switch state ("on" or "off").
	Value string `json:"value"`
}

// Client talks to the SmartThings SmartApp web service.
//
// Both operations are single HTTP round-trips with no retry or backoff:
// a voice interaction is already stale by the time a second attempt
// would land, so failures surface to the user immediately.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

// NewClient creates a directory client for the configured SmartApp.
//
// Parameters:
//   - cfg: SmartThings connection settings from config.yaml
//
// Returns:
//   - *Client: Ready client with the configured request timeout
func NewClient(cfg config.SmartThingsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
	}
}

// ListDevices fetches the current list of controllable switches.
//
// GET {base}/{appID}/switches with Bearer authorisation.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - token: Plaintext API token
//
// Returns:
//   - []Device: Devices in service order
//   - error: ErrListDevices-wrapped on transport or decode failure
func (c *Client) ListDevices(ctx context.Context, token string) ([]Device, error) {
	endpoint := fmt.Sprintf("%s/%s/switches", c.baseURL, c.appID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrListDevices, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListDevices, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrListDevices, resp.StatusCode)
	}

	var devices []Device
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrListDevices, err)
	}

	return devices, nil
}

// SetState requests a state change for one device.
//
// PUT {base}/{appID}/switches/{deviceID}/{action} with Bearer
// authorisation. The service returns no meaningful body; only the
// status code is checked.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - token: Plaintext API token
//   - deviceID: Target device identifier
//   - action: Desired state ("on" or "off")
//
// Returns:
//   - error: ErrSetState-wrapped on transport failure or non-2xx status
func (c *Client) SetState(ctx context.Context, token, deviceID, action string) error {
	endpoint := fmt.Sprintf("%s/%s/switches/%s/%s",
		c.baseURL,
		c.appID,
		url.PathEscape(deviceID),
		url.PathEscape(action),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrSetState, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetState, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status %d", ErrSetState, resp.StatusCode)
	}

	return nil
}
