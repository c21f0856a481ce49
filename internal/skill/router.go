package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/voxgate/voxgate/internal/infrastructure/config"
	"github.com/voxgate/voxgate/internal/infrastructure/logging"
	"github.com/voxgate/voxgate/internal/pipeline"
)

// Invocation outcomes recorded per handled request.
const (
	outcomeFulfilled = "fulfilled"
	outcomeFailed    = "failed"
)

// Welcome speech for a launch without an intent.
const (
	welcomeTitle  = "Welcome"
	welcomeSpeech = "Welcome to your Smart Things integration. It should allow you " +
		"to control devices in your home using your voice."
)

// Recorder receives one entry per handled invocation.
//
// Recording is best effort; implementations must not block the request.
type Recorder interface {
	WriteInvocation(intent string, outcome string, duration time.Duration)
}

// Operations is the pipeline surface the router dispatches to.
type Operations interface {
	ToggleDevice(ctx context.Context, switchName, action string) pipeline.SpeechResult
	CreateGroup(ctx context.Context, groupName string) pipeline.SpeechResult
	AddDeviceToGroup(ctx context.Context, deviceName, groupName string) pipeline.SpeechResult
}

// Router maps voice-platform events to pipeline operations and packages
// the results into the platform response envelope.
type Router struct {
	ops      Operations
	cfg      config.SkillConfig
	logger   *logging.Logger
	recorder Recorder
}

// NewRouter creates a Router.
//
// Parameters:
//   - ops: The pipeline operations to dispatch to
//   - cfg: Skill settings; a configured application_id gates inbound events
//   - logger: Request diagnostics; nil uses the process-wide logger
//   - recorder: Invocation history sink. Optional.
//
// Returns:
//   - *Router: Ready for concurrent use
func NewRouter(ops Operations, cfg config.SkillConfig, logger *logging.Logger, recorder Recorder) *Router {
	if logger == nil {
		logger = logging.Default()
	}

	return &Router{
		ops:      ops,
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
	}
}

// Handle processes one platform event and produces the response envelope.
//
// Launch events speak the welcome text, intent events dispatch to the
// matching pipeline operation, and session-end events acknowledge with
// an empty response. Unknown request or intent types are fatal for the
// invocation and surface as an error to the transport layer.
//
// Parameters:
//   - ctx: Context for the pipeline's remote calls
//   - event: Decoded platform request
//
// Returns:
//   - ResponseEnvelope: Always populated when error is nil
//   - error: ErrInvalidApplication or ErrUnknownIntent
func (rt *Router) Handle(ctx context.Context, event RequestEnvelope) (ResponseEnvelope, error) {
	if rt.cfg.ApplicationID != "" && event.Session.Application.ApplicationID != rt.cfg.ApplicationID {
		rt.logger.Warn("rejected event from unknown application",
			"application_id", event.Session.Application.ApplicationID)
		return ResponseEnvelope{}, ErrInvalidApplication
	}

	rt.logger.Info("handling platform event",
		"type", event.Request.Type,
		"request_id", event.Request.RequestID,
		"session_id", event.Session.SessionID,
		"new_session", event.Session.New)

	switch event.Request.Type {
	case RequestTypeLaunch:
		return buildResponse(pipeline.SpeechResult{
			Title:      welcomeTitle,
			Speech:     welcomeSpeech,
			EndSession: true,
		}), nil

	case RequestTypeIntent:
		return rt.handleIntent(ctx, event.Request.Intent)

	case RequestTypeSessionEnded:
		// Not called when a response already ended the session; nothing
		// to clean up, acknowledge with an empty envelope.
		return ResponseEnvelope{
			Version:           "1.0",
			SessionAttributes: map[string]any{},
			Response:          Response{ShouldEndSession: true},
		}, nil

	default:
		return ResponseEnvelope{}, fmt.Errorf("%w: request type %q", ErrUnknownIntent, event.Request.Type)
	}
}

// handleIntent dispatches a recognised intent to its operation.
func (rt *Router) handleIntent(ctx context.Context, intent Intent) (ResponseEnvelope, error) {
	started := time.Now()

	var result pipeline.SpeechResult

	switch intent.Name {
	case IntentToggleSwitch:
		result = rt.ops.ToggleDevice(ctx,
			intent.slotValue(SlotSwitch), intent.slotValue(SlotAction))

	case IntentCreateGroup:
		result = rt.ops.CreateGroup(ctx, intent.slotValue(SlotGroup))

	case IntentAddDeviceToGroup:
		result = rt.ops.AddDeviceToGroup(ctx,
			intent.slotValue(SlotDevice), intent.slotValue(SlotGroup))

	default:
		rt.record(intent.Name, outcomeFailed, started)
		return ResponseEnvelope{}, fmt.Errorf("%w: %q", ErrUnknownIntent, intent.Name)
	}

	rt.record(intent.Name, outcomeFulfilled, started)

	return buildResponse(result), nil
}

// record writes one invocation history entry if a recorder is wired.
func (rt *Router) record(intent, outcome string, started time.Time) {
	if rt.recorder == nil {
		return
	}
	rt.recorder.WriteInvocation(intent, outcome, time.Since(started))
}
