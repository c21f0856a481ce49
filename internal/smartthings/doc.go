// Package smartthings is the client for the remote device control API.
//
// The gateway never keeps local device state: the directory is the
// source of truth and is queried fresh at the start of every operation
// that needs it. Two calls cover the whole surface - list the switches
// the SmartApp can reach, and ask one of them to change state.
package smartthings
