package domain

import "fmt"

// FailureKind classifies the expected label-detection failures.
type FailureKind string

const (
	// NoPersonFound means label detection returned labels but none of them
	// was a person.
	NoPersonFound FailureKind = "NO_PERSON_FOUND"
	// NoLabelsFound means label detection returned no labels at all.
	NoLabelsFound FailureKind = "NO_LABELS_FOUND"
)

// DetectionError is a classified label-detection failure. Callers match it
// with errors.As and branch on Kind rather than on the identity of the
// underlying client error.
type DetectionError struct {
	Kind   FailureKind
	FileID string
	Err    error
}

func (e *DetectionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("detection: %s (file %s)", e.Kind, e.FileID)
	}
	return fmt.Sprintf("detection: %s (file %s): %v", e.Kind, e.FileID, e.Err)
}

func (e *DetectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
