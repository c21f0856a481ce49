package mqtt

import (
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/voxgate/voxgate/internal/infrastructure/config"
)

// Client wraps paho.mqtt.golang for Voxgate's event announcements.
//
// Voxgate only publishes - nothing in-process subscribes - so this
// client carries no subscription state. Automatic reconnection is
// handled by the paho library.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It performs the following setup:
//  1. Builds connection options from config (broker URL, auth, TLS)
//  2. Configures Last Will and Testament for offline detection
//  3. Enables auto-reconnect
//  4. Attempts initial connection with timeout
//  5. Publishes online status to voxgate/system/status
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If initial connection fails within timeout
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)

	c := &Client{cfg: cfg}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.setConnected(true)
		// Announce presence; best effort, the LWT covers the inverse.
		c.client.Publish(Topics{}.SystemStatus(), byte(cfg.QoS), true, []byte(statusOnline))
	})

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.setConnected(false)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// Set connected state immediately after successful connection.
	// The OnConnectHandler callback runs asynchronously and may not have
	// executed yet, so set it here to ensure IsConnected() returns true.
	c.setConnected(true)

	return c, nil
}

// Close disconnects from the broker after publishing offline status.
//
// Pending operations are given a short quiesce period to complete.
func (c *Client) Close() {
	if c.client == nil {
		return
	}

	if c.IsConnected() {
		token := c.client.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true, []byte(statusOffline))
		token.WaitTimeout(defaultPublishTimeout)
	}

	c.setConnected(false)
	c.client.Disconnect(defaultDisconnectQuiesce)
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected
}

// setConnected updates the tracked connection state.
func (c *Client) setConnected(connected bool) {
	c.connMu.Lock()
	c.connected = connected
	c.connMu.Unlock()
}
