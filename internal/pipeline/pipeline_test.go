package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/smartthings"
)

// fakeTokens implements TokenSource.
type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) Token(_ context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

// setStateCall records one SetState invocation.
type setStateCall struct {
	token    string
	deviceID string
	action   string
}

// fakeDirectory implements Directory and records every call.
type fakeDirectory struct {
	devices []smartthings.Device
	listErr error
	setErr  error

	listCalls int
	setCalls  []setStateCall
}

func (f *fakeDirectory) ListDevices(_ context.Context, _ string) ([]smartthings.Device, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.devices, nil
}

func (f *fakeDirectory) SetState(_ context.Context, token, deviceID, action string) error {
	f.setCalls = append(f.setCalls, setStateCall{token: token, deviceID: deviceID, action: action})
	return f.setErr
}

// fakeStore implements group.Store in memory. Scans return the state at
// call time only; writes are appended.
type fakeStore struct {
	groups      []group.Group
	memberships []group.Membership

	scanErr          error
	putGroupErr      error
	putMembershipErr error

	// frozenScan, when true, hides writes from subsequent scans.
	frozenScan bool
	snapshot   []group.Group
}

func (f *fakeStore) ScanGroups(_ context.Context) ([]group.Group, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if f.frozenScan {
		return f.snapshot, nil
	}
	return f.groups, nil
}

func (f *fakeStore) PutGroup(_ context.Context, g group.Group) error {
	if f.putGroupErr != nil {
		return f.putGroupErr
	}
	f.groups = append(f.groups, g)
	return nil
}

func (f *fakeStore) ScanMemberships(_ context.Context) ([]group.Membership, error) {
	return f.memberships, nil
}

func (f *fakeStore) PutMembership(_ context.Context, m group.Membership) error {
	if f.putMembershipErr != nil {
		return f.putMembershipErr
	}
	f.memberships = append(f.memberships, m)
	return nil
}

// fakeEvents implements EventSink and records announcements.
type fakeEvents struct {
	switches []string
	groups   []string
	adds     []string
}

func (f *fakeEvents) SwitchChanged(deviceID, _, action string) {
	f.switches = append(f.switches, deviceID+"/"+action)
}

func (f *fakeEvents) GroupCreated(groupID, _ string) {
	f.groups = append(f.groups, groupID)
}

func (f *fakeEvents) GroupDeviceAdded(groupID, _, deviceID string) {
	f.adds = append(f.adds, deviceID+"->"+groupID)
}

type fixture struct {
	tokens    *fakeTokens
	directory *fakeDirectory
	store     *fakeStore
	events    *fakeEvents
	pipeline  *Pipeline
}

func newFixture() *fixture {
	f := &fixture{
		tokens:    &fakeTokens{token: "tok-123"},
		directory: &fakeDirectory{},
		store:     &fakeStore{},
		events:    &fakeEvents{},
	}
	f.pipeline = New(Deps{
		Tokens:    f.tokens,
		Directory: f.directory,
		Groups:    f.store,
		Events:    f.events,
		NewID:     func() string { return "fixed-id" },
	})
	return f
}

func TestToggleDevice(t *testing.T) {
	t.Run("success issues exactly one state change", func(t *testing.T) {
		f := newFixture()
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Living Room Lamp", Value: "off"},
		}

		result := f.pipeline.ToggleDevice(context.Background(), "living room lamp", "on")

		if len(f.directory.setCalls) != 1 {
			t.Fatalf("SetState called %d times, want 1", len(f.directory.setCalls))
		}
		call := f.directory.setCalls[0]
		if call.deviceID != "d1" || call.action != "on" || call.token != "tok-123" {
			t.Errorf("SetState call = %+v, want d1/on with token", call)
		}
		if !strings.Contains(result.Speech, "Living Room Lamp") {
			t.Errorf("speech = %q, want confirmation naming the device", result.Speech)
		}
		if !result.EndSession {
			t.Error("EndSession = false, want true")
		}
		if len(f.events.switches) != 1 || f.events.switches[0] != "d1/on" {
			t.Errorf("announced switches = %v, want [d1/on]", f.events.switches)
		}
	})

	t.Run("invalid action makes no network calls", func(t *testing.T) {
		f := newFixture()

		result := f.pipeline.ToggleDevice(context.Background(), "Lamp", "explode")

		if f.tokens.calls != 0 || f.directory.listCalls != 0 || len(f.directory.setCalls) != 0 {
			t.Error("remote collaborators were called for an invalid action")
		}
		if result.Speech != speechBadAction("explode") {
			t.Errorf("speech = %q, want fixed on/off message", result.Speech)
		}
	})

	t.Run("empty switch name rejected before I/O", func(t *testing.T) {
		f := newFixture()

		result := f.pipeline.ToggleDevice(context.Background(), "", "on")

		if f.tokens.calls != 0 {
			t.Error("token source called despite missing device name")
		}
		if result.Speech != speechBadDevice {
			t.Errorf("speech = %q, want missing-device message", result.Speech)
		}
	})

	t.Run("already in requested state skips the command", func(t *testing.T) {
		f := newFixture()
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Living Room Lamp", Value: "on"},
		}

		result := f.pipeline.ToggleDevice(context.Background(), "Living Room Lamp", "on")

		if len(f.directory.setCalls) != 0 {
			t.Error("SetState called for a device already in the requested state")
		}
		if result.Speech != speechAlreadyInState("Living Room Lamp", "on") {
			t.Errorf("speech = %q, want already-on notice", result.Speech)
		}
		if !result.EndSession {
			t.Error("EndSession = false, want true for the informational exit")
		}
	})

	t.Run("token failure stops before the directory", func(t *testing.T) {
		f := newFixture()
		f.tokens.err = errors.New("sealed box will not open")

		result := f.pipeline.ToggleDevice(context.Background(), "Lamp", "on")

		if f.directory.listCalls != 0 {
			t.Error("directory called despite token failure")
		}
		if result.Speech != speechTokenFailure {
			t.Errorf("speech = %q, want token failure message", result.Speech)
		}
	})

	t.Run("list failure stops before any command", func(t *testing.T) {
		f := newFixture()
		f.directory.listErr = errors.New("boom")

		result := f.pipeline.ToggleDevice(context.Background(), "Lamp", "on")

		if len(f.directory.setCalls) != 0 {
			t.Error("SetState called despite list failure")
		}
		if result.Speech != speechListFailure {
			t.Errorf("speech = %q, want list failure message", result.Speech)
		}
	})

	t.Run("unresolvable name reports locate failure", func(t *testing.T) {
		f := newFixture()
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Garage Door", Value: "off"},
		}

		result := f.pipeline.ToggleDevice(context.Background(), "aquarium pump", "on")

		if len(f.directory.setCalls) != 0 {
			t.Error("SetState called despite failed resolution")
		}
		if result.Speech != speechDeviceNotFound("aquarium pump") {
			t.Errorf("speech = %q, want locate failure message", result.Speech)
		}
	})

	t.Run("state change failure reported", func(t *testing.T) {
		f := newFixture()
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Lamp", Value: "off"},
		}
		f.directory.setErr = errors.New("503")

		result := f.pipeline.ToggleDevice(context.Background(), "Lamp", "on")

		if result.Speech != speechSetFailure {
			t.Errorf("speech = %q, want state change failure message", result.Speech)
		}
		if len(f.events.switches) != 0 {
			t.Error("event announced despite command failure")
		}
	})
}

func TestCreateGroup(t *testing.T) {
	t.Run("success stores the group and confirms", func(t *testing.T) {
		f := newFixture()

		result := f.pipeline.CreateGroup(context.Background(), "Kitchen")

		if len(f.store.groups) != 1 {
			t.Fatalf("stored %d groups, want 1", len(f.store.groups))
		}
		g := f.store.groups[0]
		if g.ID != "fixed-id" || g.Name != "Kitchen" {
			t.Errorf("stored group = %+v, want fixed-id/Kitchen", g)
		}
		if result.Speech != speechGroupCreated("Kitchen") {
			t.Errorf("speech = %q, want creation confirmation", result.Speech)
		}
		if len(f.events.groups) != 1 {
			t.Errorf("announced groups = %v, want one entry", f.events.groups)
		}
	})

	t.Run("near-duplicate name rejected", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}

		result := f.pipeline.CreateGroup(context.Background(), "kithen")

		if len(f.store.groups) != 1 {
			t.Error("duplicate group was stored despite conflict")
		}
		if result.Speech != speechGroupExists("kithen") {
			t.Errorf("speech = %q, want already-exists notice", result.Speech)
		}
	})

	t.Run("distinct name passes the conflict check", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}

		result := f.pipeline.CreateGroup(context.Background(), "Garage")

		if len(f.store.groups) != 2 {
			t.Errorf("stored %d groups, want 2", len(f.store.groups))
		}
		if result.Speech != speechGroupCreated("Garage") {
			t.Errorf("speech = %q, want creation confirmation", result.Speech)
		}
	})

	t.Run("scan failure reported", func(t *testing.T) {
		f := newFixture()
		f.store.scanErr = errors.New("disk gone")

		result := f.pipeline.CreateGroup(context.Background(), "Kitchen")

		if result.Speech != speechGroupsFailure {
			t.Errorf("speech = %q, want group list failure message", result.Speech)
		}
	})

	t.Run("insert failure reported", func(t *testing.T) {
		f := newFixture()
		f.store.putGroupErr = errors.New("disk gone")

		result := f.pipeline.CreateGroup(context.Background(), "Kitchen")

		if result.Speech != speechCreateFailure("Kitchen") {
			t.Errorf("speech = %q, want creation failure message", result.Speech)
		}
	})

	// The conflict check is scan-then-insert with no store-level guard.
	// Two invocations whose scans both precede either write will both
	// succeed and leave two groups with the same name. This documents
	// the accepted race window rather than guarding against it.
	t.Run("scan-then-insert window admits duplicate names", func(t *testing.T) {
		f := newFixture()
		f.store.frozenScan = true // both scans see the pre-write state

		first := f.pipeline.CreateGroup(context.Background(), "Kitchen")
		second := f.pipeline.CreateGroup(context.Background(), "Kitchen")

		if first.Speech != speechGroupCreated("Kitchen") || second.Speech != speechGroupCreated("Kitchen") {
			t.Error("expected both overlapping creations to succeed")
		}
		if len(f.store.groups) != 2 {
			t.Errorf("stored %d groups, want 2 duplicates", len(f.store.groups))
		}
	})
}

func TestAddDeviceToGroup(t *testing.T) {
	t.Run("success records the membership", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Kitchen Spotlights", Value: "off"},
		}

		result := f.pipeline.AddDeviceToGroup(context.Background(), "kitchen spotlights", "Kitchen")

		if len(f.store.memberships) != 1 {
			t.Fatalf("stored %d memberships, want 1", len(f.store.memberships))
		}
		m := f.store.memberships[0]
		if m.DeviceID != "d1" || m.GroupID != "g1" {
			t.Errorf("membership = %+v, want d1 in g1", m)
		}
		if result.Speech != speechDeviceAdded {
			t.Errorf("speech = %q, want added confirmation", result.Speech)
		}
		if len(f.events.adds) != 1 || f.events.adds[0] != "d1->g1" {
			t.Errorf("announced adds = %v, want [d1->g1]", f.events.adds)
		}
	})

	t.Run("unknown group never reaches the directory", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}

		result := f.pipeline.AddDeviceToGroup(context.Background(), "Lamp", "observatory")

		if f.tokens.calls != 0 || f.directory.listCalls != 0 {
			t.Error("remote collaborators called despite unknown group")
		}
		if result.Speech != speechGroupNotFound("observatory") {
			t.Errorf("speech = %q, want group-not-found message", result.Speech)
		}
	})

	t.Run("fuzzy group name resolves", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Kitchen Spotlights", Value: "off"},
		}

		result := f.pipeline.AddDeviceToGroup(context.Background(), "Kitchen Spotlights", "kithen")

		if result.Speech != speechDeviceAdded {
			t.Errorf("speech = %q, want added confirmation", result.Speech)
		}
		if len(f.store.memberships) != 1 || f.store.memberships[0].GroupID != "g1" {
			t.Errorf("memberships = %v, want one entry in g1", f.store.memberships)
		}
	})

	t.Run("unresolvable device reports locate failure", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Garage Door", Value: "off"},
		}

		result := f.pipeline.AddDeviceToGroup(context.Background(), "aquarium pump", "Kitchen")

		if len(f.store.memberships) != 0 {
			t.Error("membership stored despite failed device resolution")
		}
		if result.Speech != speechDeviceNotFound("aquarium pump") {
			t.Errorf("speech = %q, want locate failure message", result.Speech)
		}
	})

	t.Run("membership insert failure reported", func(t *testing.T) {
		f := newFixture()
		f.store.groups = []group.Group{{ID: "g1", Name: "Kitchen"}}
		f.store.putMembershipErr = errors.New("disk gone")
		f.directory.devices = []smartthings.Device{
			{ID: "d1", Name: "Kitchen Spotlights", Value: "off"},
		}

		result := f.pipeline.AddDeviceToGroup(context.Background(), "Kitchen Spotlights", "Kitchen")

		if result.Speech != speechAddFailure {
			t.Errorf("speech = %q, want save failure message", result.Speech)
		}
	})
}
