package pipeline

import (
	"context"

	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/infrastructure/logging"
	"github.com/voxgate/voxgate/internal/smartthings"
)

// Fuzzy-match acceptance thresholds.
//
// Each use site carries its own threshold. Conflict checks are strict so
// legitimately distinct names are not blocked; direct device control is
// lenient to tolerate speech-recognition noise.
const (
	// thresholdGroupConflict guards group creation against near-duplicate names.
	thresholdGroupConflict = 0.9

	// thresholdGroupLookup resolves a spoken group name to a stored group.
	thresholdGroupLookup = 0.9

	// thresholdGroupAssign resolves a spoken device name for group assignment.
	thresholdGroupAssign = 0.7

	// thresholdDeviceControl resolves a spoken device name for direct control.
	thresholdDeviceControl = 0.5
)

// TokenSource obtains the bearer token for the remote device API.
//
// One call per invocation, no retry, no caching across invocations.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Directory is the remote device API surface the pipeline consumes.
type Directory interface {
	ListDevices(ctx context.Context, token string) ([]smartthings.Device, error)
	SetState(ctx context.Context, token, deviceID, action string) error
}

// EventSink receives announcements of completed mutations.
//
// Announcements are best effort; implementations must not block the
// invocation on delivery.
type EventSink interface {
	SwitchChanged(deviceID, deviceName, action string)
	GroupCreated(groupID, groupName string)
	GroupDeviceAdded(groupID, groupName, deviceID string)
}

// Pipeline composes the token source, device directory, fuzzy matcher
// and group store into the three user-facing operations.
//
// Each operation is a strict ordered sequence of fallible steps. Any
// step may terminate the sequence early with a SpeechResult; every
// code path produces one.
//
// Thread Safety:
//   - Safe for concurrent use. Each invocation owns its run state; the
//     only shared resource is the store, which serialises its own writes.
type Pipeline struct {
	tokens    TokenSource
	directory Directory
	groups    group.Store
	events    EventSink
	logger    *logging.Logger
	newID     func() string
}

// Deps carries the collaborators a Pipeline needs.
type Deps struct {
	// Tokens obtains the remote API credential. Required.
	Tokens TokenSource

	// Directory lists devices and changes switch state. Required.
	Directory Directory

	// Groups is the persisted group registry. Required.
	Groups group.Store

	// Events receives mutation announcements. Optional.
	Events EventSink

	// Logger for per-step diagnostics. Optional; defaults to the
	// process-wide logger.
	Logger *logging.Logger

	// NewID generates group identifiers. Optional; defaults to
	// random UUIDs. Overridden in tests for determinism.
	NewID func() string
}

// New creates a Pipeline from its dependencies.
//
// Parameters:
//   - deps: Collaborators; Tokens, Directory and Groups are required
//
// Returns:
//   - *Pipeline: Ready for concurrent use
func New(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	newID := deps.NewID
	if newID == nil {
		newID = defaultNewID
	}

	return &Pipeline{
		tokens:    deps.Tokens,
		directory: deps.Directory,
		groups:    deps.Groups,
		events:    deps.Events,
		logger:    logger,
		newID:     newID,
	}
}
