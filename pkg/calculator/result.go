// Package calculator implements the loss-mitigation guideline calculators.
//
// Every calculator is a pure function of its input: it validates the input's
// preconditions, computes a value, appends advisory warnings for crossed
// guideline thresholds, and wraps the value in a Result envelope. Calculators
// hold no state and are safe for concurrent use.
package calculator

// Result is the uniform envelope returned by every calculator.
type Result[T any] struct {
	CalculationType    string         `json:"calculationType"`
	Result             T              `json:"result"`
	Details            map[string]any `json:"details,omitempty"`
	Warnings           []string       `json:"warnings,omitempty"`
	GuidelineReference string         `json:"guidelineReference,omitempty"`
}

// Format wraps a computed value into a Result carrying the calculator's
// guideline citation.
func Format[T any](calculationType string, value T, details map[string]any, warnings []string) Result[T] {
	var reference string
	if d, ok := Lookup(calculationType); ok {
		reference = d.GuidelineReference
	}
	if len(details) == 0 {
		details = nil
	}
	if len(warnings) == 0 {
		warnings = nil
	}
	return Result[T]{
		CalculationType:    calculationType,
		Result:             value,
		Details:            details,
		Warnings:           warnings,
		GuidelineReference: reference,
	}
}

// WithReference overrides the guideline citation.
func (r Result[T]) WithReference(reference string) Result[T] {
	r.GuidelineReference = reference
	return r
}

// Erase converts a typed result to Result[any] so results of different
// calculators can be carried together.
func (r Result[T]) Erase() Result[any] {
	return Result[any]{
		CalculationType:    r.CalculationType,
		Result:             r.Result,
		Details:            r.Details,
		Warnings:           r.Warnings,
		GuidelineReference: r.GuidelineReference,
	}
}

// HasWarning reports whether msg is among the result's warnings.
func (r Result[T]) HasWarning(msg string) bool {
	for _, w := range r.Warnings {
		if w == msg {
			return true
		}
	}
	return false
}
