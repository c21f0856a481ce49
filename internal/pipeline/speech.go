package pipeline

import "fmt"

// Card titles for the three operations.
const (
	titleToggle   = "SmartThings Action"
	titleCreate   = "SmartThings Group Creation"
	titleAddToGrp = "SmartThings Add Device to Group"
)

// Fixed speech lines.
const (
	speechBadDevice     = "Sorry, I didn't understand which device you want to control. Please try again."
	speechTokenFailure  = "Sorry, I was unable to access the credentials for your device service."
	speechListFailure   = "Sorry, I was unable to get the device list from your device service."
	speechSetFailure    = "Sorry, there was an error changing the status of your switch."
	speechGroupsFailure = "Sorry, I was unable to load the existing group list."
	speechDeviceAdded   = "I have successfully added your device."
	speechAddFailure    = "Sorry, I was unable to save your device to the group."
	speechInternalError = "Sorry, something went wrong handling your request. Please try again."
)

// Interpolated speech lines.

func speechBadAction(action string) string {
	return fmt.Sprintf("Sorry, I can only turn devices on or off. It sounds like you asked me to turn something %s", action)
}

func speechDeviceNotFound(name string) string {
	return fmt.Sprintf("Unable to locate device with a name similar to %s. Please try again.", name)
}

func speechAlreadyInState(deviceName, action string) string {
	return fmt.Sprintf("Looks like the %s is already %s", deviceName, action)
}

func speechToggled(deviceName, action string) string {
	return fmt.Sprintf("OK, I have turned the %s %s", deviceName, action)
}

func speechGroupExists(name string) string {
	return fmt.Sprintf("A group called %s already exists!", name)
}

func speechGroupNotFound(name string) string {
	return fmt.Sprintf("Sorry, I can't find a group called %s", name)
}

func speechGroupCreated(name string) string {
	return fmt.Sprintf("I have created a new group called %s. You can now add devices to it.", name)
}

func speechCreateFailure(name string) string {
	return fmt.Sprintf("Sorry, I was unable to create a new group called %s", name)
}
