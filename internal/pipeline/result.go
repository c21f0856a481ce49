package pipeline

import "context"

// SpeechResult is the terminal output of every pipeline operation.
//
// Every invocation produces one, on every code path. Success, conflict,
// resolution miss and transport failure all converge on this shape; the
// skill layer only has to render it into the platform envelope.
type SpeechResult struct {
	// Title is the card heading shown in the companion app.
	Title string

	// Speech is the text spoken back to the user.
	Speech string

	// Reprompt is spoken if the user stays silent with the session open.
	Reprompt string

	// EndSession closes the voice session when true.
	EndSession bool
}

// outcome is the tagged result of a single pipeline step.
//
// A step either lets the chain continue or terminates it with the
// result to speak. The terminal step of every operation terminates.
type outcome struct {
	terminated bool
	result     SpeechResult
}

// step is one unit of an ordered operation sequence. Steps share state
// through the per-invocation run struct they are methods on.
type step func(ctx context.Context) outcome

// next continues the chain to the following step.
func next() outcome {
	return outcome{}
}

// terminate stops the chain and speaks the given result.
func terminate(result SpeechResult) outcome {
	return outcome{terminated: true, result: result}
}

// run drives an ordered step sequence, stopping at the first step that
// terminates. The last step of every sequence terminates, so the
// fallthrough result is unreachable in practice.
func run(ctx context.Context, title string, steps []step) SpeechResult {
	for _, s := range steps {
		if o := s(ctx); o.terminated {
			return o.result
		}
	}

	return SpeechResult{
		Title:      title,
		Speech:     speechInternalError,
		EndSession: true,
	}
}
