package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// SwitchEvent describes a completed state change on a directory switch.
type SwitchEvent struct {
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

// GroupEvent describes a change to the group registry.
type GroupEvent struct {
	GroupID   string    `json:"group_id"`
	GroupName string    `json:"group_name"`
	Change    string    `json:"change"`
	DeviceID  string    `json:"device_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Group registry change kinds.
const (
	GroupCreated     = "created"
	GroupDeviceAdded = "device_added"
)

// PublishSwitchEvent announces a completed switch command.
//
// Parameters:
//   - event: Details of the commanded switch and the action applied
//
// Returns:
//   - error: ErrNotConnected if offline, ErrPublishFailed on broker errors
func (c *Client) PublishSwitchEvent(event SwitchEvent) error {
	return c.publishJSON(Topics{}.SwitchEvent(event.DeviceID), event)
}

// PublishGroupEvent announces a group registry change.
//
// Parameters:
//   - event: Details of the created or modified group
//
// Returns:
//   - error: ErrNotConnected if offline, ErrPublishFailed on broker errors
func (c *Client) PublishGroupEvent(event GroupEvent) error {
	return c.publishJSON(Topics{}.GroupEvent(event.GroupID), event)
}

// publishJSON marshals a payload and publishes it to the given topic.
//
// Announcements are fire-and-forget from the caller's perspective, so
// events are never retained and QoS comes from config.
func (c *Client) publishJSON(topic string, payload any) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrPublishFailed, err)
	}

	token := c.client.Publish(topic, byte(c.cfg.QoS), false, data)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout publishing to %s", ErrPublishFailed, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
