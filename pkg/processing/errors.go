package processing

import "fmt"

// PreconditionError reports invalid input, found before any session exists.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// UnpackError reports a downloaded archive that could not be extracted.
type UnpackError struct {
	Archive string
	Err     error
}

func (e *UnpackError) Error() string {
	return fmt.Sprintf("unpacking %s: %v", e.Archive, e.Err)
}

func (e *UnpackError) Unwrap() error { return e.Err }
