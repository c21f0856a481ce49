package mqtt

import "fmt"

// Topic namespace constants.
const (
	// topicPrefix is the root namespace for all Voxgate topics.
	topicPrefix = "voxgate"
)

// Topics provides structured topic generation for the voxgate namespace.
//
// Topic structure:
//
//	voxgate/system/status            - gateway online/offline (retained)
//	voxgate/event/switch/{deviceID}  - a switch was commanded on or off
//	voxgate/event/group/{groupID}    - a group was created or gained a device
type Topics struct{}

// SystemStatus returns the topic for gateway online/offline status.
func (Topics) SystemStatus() string {
	return topicPrefix + "/system/status"
}

// SwitchEvent returns the topic for state-change announcements of a device.
//
// Parameters:
//   - deviceID: Directory identifier of the commanded switch
func (Topics) SwitchEvent(deviceID string) string {
	return fmt.Sprintf("%s/event/switch/%s", topicPrefix, deviceID)
}

// GroupEvent returns the topic for registry announcements of a group.
//
// Parameters:
//   - groupID: Identifier of the created or modified group
func (Topics) GroupEvent(groupID string) string {
	return fmt.Sprintf("%s/event/group/%s", topicPrefix, groupID)
}
