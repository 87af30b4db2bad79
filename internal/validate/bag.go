package validate

// Errors is a per-form error bag: field → message. A field mapped to an empty
// string is treated identically to an absent field, so callers must judge
// validity by message content, not key presence.
type Errors map[Field]string

// Set records a validation result. Empty messages are stored as-is; use
// Compact or Valid for aggregation.
func (e Errors) Set(f Field, msg string) {
	e[f] = msg
}

// Compact returns a copy with all empty-message entries dropped.
func (e Errors) Compact() Errors {
	out := make(Errors, len(e))
	for f, msg := range e {
		if msg != "" {
			out[f] = msg
		}
	}
	return out
}

// Valid reports whether the bag holds no non-empty message, which is the
// "form is submittable" condition.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}
