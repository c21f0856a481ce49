package skill

import "errors"

// Domain errors for the skill package.
var (
	// ErrUnknownIntent is returned for request or intent names the gateway
	// does not recognise.
	ErrUnknownIntent = errors.New("skill: unknown intent")

	// ErrInvalidApplication is returned when an event carries an
	// application ID other than the configured one.
	ErrInvalidApplication = errors.New("skill: invalid application ID")
)
