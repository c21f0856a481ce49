// Package pipeline is the intent resolution and orchestration core.
//
// It composes the credential source, the remote device directory, the
// fuzzy matcher and the group store into three user-facing operations:
// toggle a switch, create a device group, and add a device to a group.
//
// Each operation is modelled as an ordered list of fallible steps
// driven by a small runner. A step either continues the chain or
// terminates it with the SpeechResult to speak; the runner stops at
// the first termination. There is no fan-out anywhere: every step's
// input is the prior step's output, so execution within one
// invocation is strictly sequential. Separate invocations share no
// in-process mutable state and may run concurrently.
//
// Failures never retry. Validation errors are caught before any I/O,
// resolution misses speak an actionable prompt, and transport, store
// and credential failures collapse to generic apologies. Every path,
// success or not, ends in a SpeechResult.
package pipeline
