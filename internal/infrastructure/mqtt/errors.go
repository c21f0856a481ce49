package mqtt

import "errors"

// Domain errors for the mqtt package.
var (
	// ErrConnectionFailed is returned when the initial broker connection fails.
	ErrConnectionFailed = errors.New("mqtt: connection to broker failed")

	// ErrNotConnected is returned when publishing while disconnected.
	ErrNotConnected = errors.New("mqtt: not connected to broker")

	// ErrPublishFailed is returned when a publish is not acknowledged.
	ErrPublishFailed = errors.New("mqtt: publish failed")
)
