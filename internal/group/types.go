package group

// Group is a user-defined named collection of devices.
//
// The identifier is generated (UUID) and never derived from the name.
// Name uniqueness is NOT enforced by the store: the orchestration layer
// performs a fuzzy lookup-before-insert conflict check instead.
type Group struct {
	// ID is the generated unique group identifier.
	ID string `json:"group_id"`

	// Name is the user-supplied group name, as spoken.
	Name string `json:"group_name"`
}

// Membership assigns a device to a group.
//
// Keyed by device ID: storing a membership replaces any previous
// assignment for that device, so a device belongs to at most one group.
type Membership struct {
	// DeviceID is the remote directory's device identifier.
	DeviceID string `json:"device_id"`

	// GroupID references the owning group.
	GroupID string `json:"group_id"`
}
