package domain

import "strings"

// ValidationError carries the itemized list of fields that were missing or
// malformed in a submission. Surfaced verbatim to the caller, never retried.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}
