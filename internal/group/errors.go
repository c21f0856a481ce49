package group

import "errors"

// Domain errors for the group package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, group.ErrStore) {
//	    // handle store failure
//	}
var (
	// ErrStore is returned when a persisted read or write fails.
	// Callers treat all store failures uniformly, so the cause is wrapped
	// rather than distinguished.
	ErrStore = errors.New("group: store failure")

	// ErrInvalidGroup is returned when a group has no ID or name.
	ErrInvalidGroup = errors.New("group: invalid group")

	// ErrInvalidMembership is returned when a membership has no device or group ID.
	ErrInvalidMembership = errors.New("group: invalid membership")
)
