// Package skill speaks the voice platform's request and response shapes.
//
// It decodes inbound platform events, routes recognised intents to the
// orchestration pipeline, and renders every SpeechResult into the
// platform envelope (plain-text speech, a simple card, a reprompt and
// the session flag). The router is deliberately thin: all decision
// making lives in the pipeline, and the only failures originating here
// are an unknown intent name or an event from the wrong application.
package skill
