package smartthings

import "errors"

// Domain errors for the smartthings package.
var (
	// ErrListDevices is returned when the device list cannot be fetched.
	ErrListDevices = errors.New("smartthings: listing devices failed")

	// ErrSetState is returned when a state-change request fails.
	ErrSetState = errors.New("smartthings: changing switch state failed")
)
