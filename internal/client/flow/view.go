// Package flow holds the presentation-independent controller for the survey
// application. A View renders output and collects input; the flow decides
// what happens. Console and windowed front-ends differ only in their View.
package flow

// View is the thin rendering/input surface a presentation variant provides.
//
// Contract:
//   - Show displays the given lines to the user in order.
//   - PromptText displays prompt and returns one line of input, trimmed.
//   - PromptPassword reads a secret without echoing it.
//
// Implementations are used from a single goroutine; no method is called
// concurrently.
type View interface {
	Show(lines ...string)
	PromptText(prompt string) (string, error)
	PromptPassword(prompt string) (string, error)
}
