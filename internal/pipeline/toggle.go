package pipeline

import (
	"context"

	"github.com/voxgate/voxgate/internal/match"
	"github.com/voxgate/voxgate/internal/smartthings"
)

// toggleRun is the per-invocation state of a ToggleDevice operation.
// Steps fill in fields for the steps that follow.
type toggleRun struct {
	p *Pipeline

	switchName string
	action     string

	token   string
	devices []smartthings.Device
	device  smartthings.Device
}

// ToggleDevice turns a named switch on or off.
//
// The operation is a strict ordered sequence: validate slots, obtain
// the credential, fetch the device list, resolve the spoken name,
// skip the command if the switch is already in the requested state,
// then issue the state change. The first failing step terminates the
// chain with the message to speak.
//
// Parameters:
//   - ctx: Context for the remote calls
//   - switchName: Spoken device name, resolved fuzzily against the directory
//   - action: Requested state, "on" or "off"
//
// Returns:
//   - SpeechResult: Produced on every path, success or failure
func (p *Pipeline) ToggleDevice(ctx context.Context, switchName, action string) SpeechResult {
	r := &toggleRun{p: p, switchName: switchName, action: action}

	p.logger.Info("toggle requested", "switch", switchName, "action", action)

	return run(ctx, titleToggle, []step{
		r.validate,
		r.fetchToken,
		r.fetchDevices,
		r.resolveDevice,
		r.skipIfAlreadyInState,
		r.setState,
	})
}

// validate checks the slot values before any I/O happens.
func (r *toggleRun) validate(_ context.Context) outcome {
	if r.action != smartthings.StateOn && r.action != smartthings.StateOff {
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechBadAction(r.action),
			EndSession: true,
		})
	}

	if r.switchName == "" {
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechBadDevice,
			EndSession: true,
		})
	}

	return next()
}

func (r *toggleRun) fetchToken(ctx context.Context) outcome {
	token, err := r.p.tokens.Token(ctx)
	if err != nil {
		r.p.logger.Error("token retrieval failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechTokenFailure,
			EndSession: true,
		})
	}

	r.token = token
	return next()
}

func (r *toggleRun) fetchDevices(ctx context.Context) outcome {
	devices, err := r.p.directory.ListDevices(ctx, r.token)
	if err != nil {
		r.p.logger.Error("device list fetch failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechListFailure,
			EndSession: true,
		})
	}

	r.devices = devices
	return next()
}

func (r *toggleRun) resolveDevice(_ context.Context) outcome {
	device, ok := match.Closest(r.devices, r.switchName, thresholdDeviceControl,
		func(d smartthings.Device) string { return d.Name })
	if !ok {
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechDeviceNotFound(r.switchName),
			EndSession: true,
		})
	}

	r.device = device
	return next()
}

// skipIfAlreadyInState ends the chain without a command when the switch
// already reports the requested state. This is an informational exit,
// not an error.
func (r *toggleRun) skipIfAlreadyInState(_ context.Context) outcome {
	if r.device.Value == r.action {
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechAlreadyInState(r.device.Name, r.action),
			EndSession: true,
		})
	}

	return next()
}

func (r *toggleRun) setState(ctx context.Context) outcome {
	if err := r.p.directory.SetState(ctx, r.token, r.device.ID, r.action); err != nil {
		r.p.logger.Error("state change failed",
			"device_id", r.device.ID, "action", r.action, "error", err)
		return terminate(SpeechResult{
			Title:      titleToggle,
			Speech:     speechSetFailure,
			EndSession: true,
		})
	}

	r.p.logger.Info("switch state changed",
		"device_id", r.device.ID, "device_name", r.device.Name, "action", r.action)

	if r.p.events != nil {
		r.p.events.SwitchChanged(r.device.ID, r.device.Name, r.action)
	}

	return terminate(SpeechResult{
		Title:      titleToggle,
		Speech:     speechToggled(r.device.Name, r.action),
		EndSession: true,
	})
}
