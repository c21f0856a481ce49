package influxdb

import "errors"

// Domain errors for the influxdb package.
var (
	// ErrDisabled is returned when connecting while the integration is disabled.
	ErrDisabled = errors.New("influxdb: integration disabled in config")

	// ErrConnectionFailed is returned when the server cannot be reached.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected is returned when operating on a closed client.
	ErrNotConnected = errors.New("influxdb: not connected")
)
