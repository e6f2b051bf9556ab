package loader

import (
	"strconv"
)

// LoadError represents an error loading lattice definitions.
type LoadError struct {
	File    string
	Line    int
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = "line " + strconv.Itoa(e.Line) + ": " + msg
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// withFile sets the file on a LoadError, or wraps any other error.
func withFile(err error, path string) error {
	if le, ok := err.(*LoadError); ok {
		le.File = path
		return le
	}
	return &LoadError{File: path, Message: "parse failed", Cause: err}
}
