package skill

import "github.com/voxgate/voxgate/internal/pipeline"

// Request types delivered by the voice platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Intent names recognised by the gateway.
const (
	IntentToggleSwitch     = "ToggleSwitch"
	IntentCreateGroup      = "CreateGroup"
	IntentAddDeviceToGroup = "AddDeviceToGroup"
)

// Slot names carried by the recognised intents.
const (
	SlotAction = "Action"
	SlotSwitch = "Switch"
	SlotDevice = "Device"
	SlotGroup  = "Group"
)

// RequestEnvelope is the inbound voice-platform event.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session identifies the conversation and the invoking skill.
type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
}

// Application carries the skill's platform identifier.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// Request is the typed body of the event.
type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Intent    Intent `json:"intent"`
}

// Intent is the structured spoken request: a name and its slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot is one named parameter extracted from the utterance.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// slotValue returns the value of a named slot, or "" when absent.
func (i Intent) slotValue(name string) string {
	return i.Slots[name].Value
}

// ResponseEnvelope is the outbound platform response.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          Response       `json:"response"`
}

// Response is the speechlet body of a ResponseEnvelope.
type Response struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	Card             Card         `json:"card"`
	Reprompt         Reprompt     `json:"reprompt"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

// OutputSpeech is the text the platform speaks aloud.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card is the visual companion-app rendering of the response.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Reprompt is spoken if the user stays silent with the session open.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// buildResponse renders a SpeechResult into the platform envelope.
func buildResponse(result pipeline.SpeechResult) ResponseEnvelope {
	return ResponseEnvelope{
		Version:           "1.0",
		SessionAttributes: map[string]any{},
		Response: Response{
			OutputSpeech: OutputSpeech{
				Type: "PlainText",
				Text: result.Speech,
			},
			Card: Card{
				Type:    "Simple",
				Title:   result.Title,
				Content: result.Speech,
			},
			Reprompt: Reprompt{
				OutputSpeech: OutputSpeech{
					Type: "PlainText",
					Text: result.Reprompt,
				},
			},
			ShouldEndSession: result.EndSession,
		},
	}
}
