package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/match"
	"github.com/voxgate/voxgate/internal/smartthings"
)

// defaultNewID generates a random group identifier.
func defaultNewID() string {
	return uuid.NewString()
}

// createRun is the per-invocation state of a CreateGroup operation.
type createRun struct {
	p *Pipeline

	groupName string
	existing  []group.Group
}

// CreateGroup registers a new named device group.
//
// Name uniqueness is enforced here, not by the store: existing group
// names are scanned and fuzzily compared before the insert. Two
// concurrent calls with the same name can both pass the conflict check
// before either write commits; the scan-then-insert window is accepted
// for a single-user voice gateway.
//
// Parameters:
//   - ctx: Context for the store calls
//   - groupName: Spoken name for the new group
//
// Returns:
//   - SpeechResult: Confirmation, conflict notice or failure message
func (p *Pipeline) CreateGroup(ctx context.Context, groupName string) SpeechResult {
	r := &createRun{p: p, groupName: groupName}

	p.logger.Info("group creation requested", "group", groupName)

	return run(ctx, titleCreate, []step{
		r.scanGroups,
		r.checkConflict,
		r.insertGroup,
	})
}

func (r *createRun) scanGroups(ctx context.Context) outcome {
	existing, err := r.p.groups.ScanGroups(ctx)
	if err != nil {
		r.p.logger.Error("group scan failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleCreate,
			Speech:     speechGroupsFailure,
			EndSession: true,
		})
	}

	r.existing = existing
	return next()
}

// checkConflict rejects names too close to an existing group. The
// threshold is strict so distinct names are not blocked by accident.
func (r *createRun) checkConflict(_ context.Context) outcome {
	_, found := match.Closest(r.existing, r.groupName, thresholdGroupConflict,
		func(g group.Group) string { return g.Name })
	if found {
		return terminate(SpeechResult{
			Title:      titleCreate,
			Speech:     speechGroupExists(r.groupName),
			EndSession: true,
		})
	}

	return next()
}

func (r *createRun) insertGroup(ctx context.Context) outcome {
	g := group.Group{
		ID:   r.p.newID(),
		Name: r.groupName,
	}

	if err := r.p.groups.PutGroup(ctx, g); err != nil {
		r.p.logger.Error("group insert failed", "group", r.groupName, "error", err)
		return terminate(SpeechResult{
			Title:      titleCreate,
			Speech:     speechCreateFailure(r.groupName),
			EndSession: true,
		})
	}

	r.p.logger.Info("group created", "group_id", g.ID, "group_name", g.Name)

	if r.p.events != nil {
		r.p.events.GroupCreated(g.ID, g.Name)
	}

	return terminate(SpeechResult{
		Title:      titleCreate,
		Speech:     speechGroupCreated(r.groupName),
		EndSession: true,
	})
}

// addRun is the per-invocation state of an AddDeviceToGroup operation.
type addRun struct {
	p *Pipeline

	deviceName string
	groupName  string

	group   group.Group
	token   string
	devices []smartthings.Device
	device  smartthings.Device
}

// AddDeviceToGroup records a device as a member of an existing group.
//
// The group is resolved first so a missing group never costs a remote
// call. The device is then resolved against a fresh directory listing
// and the membership is written keyed by device, so re-adding a device
// moves it rather than duplicating it.
//
// Parameters:
//   - ctx: Context for the store and remote calls
//   - deviceName: Spoken device name
//   - groupName: Spoken name of the target group
//
// Returns:
//   - SpeechResult: Confirmation or the first failure encountered
func (p *Pipeline) AddDeviceToGroup(ctx context.Context, deviceName, groupName string) SpeechResult {
	r := &addRun{p: p, deviceName: deviceName, groupName: groupName}

	p.logger.Info("group assignment requested", "device", deviceName, "group", groupName)

	return run(ctx, titleAddToGrp, []step{
		r.resolveGroup,
		r.fetchToken,
		r.fetchDevices,
		r.resolveDevice,
		r.insertMembership,
	})
}

func (r *addRun) resolveGroup(ctx context.Context) outcome {
	existing, err := r.p.groups.ScanGroups(ctx)
	if err != nil {
		r.p.logger.Error("group scan failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechGroupsFailure,
			EndSession: true,
		})
	}

	g, found := match.Closest(existing, r.groupName, thresholdGroupLookup,
		func(g group.Group) string { return g.Name })
	if !found {
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechGroupNotFound(r.groupName),
			EndSession: true,
		})
	}

	r.group = g
	return next()
}

func (r *addRun) fetchToken(ctx context.Context) outcome {
	token, err := r.p.tokens.Token(ctx)
	if err != nil {
		r.p.logger.Error("token retrieval failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechTokenFailure,
			EndSession: true,
		})
	}

	r.token = token
	return next()
}

func (r *addRun) fetchDevices(ctx context.Context) outcome {
	devices, err := r.p.directory.ListDevices(ctx, r.token)
	if err != nil {
		r.p.logger.Error("device list fetch failed", "error", err)
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechListFailure,
			EndSession: true,
		})
	}

	r.devices = devices
	return next()
}

func (r *addRun) resolveDevice(_ context.Context) outcome {
	device, ok := match.Closest(r.devices, r.deviceName, thresholdGroupAssign,
		func(d smartthings.Device) string { return d.Name })
	if !ok {
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechDeviceNotFound(r.deviceName),
			EndSession: true,
		})
	}

	r.device = device
	return next()
}

func (r *addRun) insertMembership(ctx context.Context) outcome {
	m := group.Membership{
		DeviceID: r.device.ID,
		GroupID:  r.group.ID,
	}

	if err := r.p.groups.PutMembership(ctx, m); err != nil {
		r.p.logger.Error("membership insert failed",
			"device_id", m.DeviceID, "group_id", m.GroupID, "error", err)
		return terminate(SpeechResult{
			Title:      titleAddToGrp,
			Speech:     speechAddFailure,
			EndSession: true,
		})
	}

	r.p.logger.Info("device added to group",
		"device_id", m.DeviceID, "device_name", r.device.Name,
		"group_id", r.group.ID, "group_name", r.group.Name)

	if r.p.events != nil {
		r.p.events.GroupDeviceAdded(r.group.ID, r.group.Name, r.device.ID)
	}

	return terminate(SpeechResult{
		Title:      titleAddToGrp,
		Speech:     speechDeviceAdded,
		EndSession: true,
	})
}
