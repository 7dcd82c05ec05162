package solar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a focus request names a body
	// the scene does not contain.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNonFinite reports a NaN or infinite angle produced by the clock.
	ErrNonFinite = errors.New("non-finite angle")
)

// BuildError describes a malformed descriptor found while building the scene.
type BuildError struct {
	Body   string
	Field  string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("build %q: %s", e.Body, e.Reason)
	}
	return fmt.Sprintf("build %q: %s %s", e.Body, e.Field, e.Reason)
}

// AssetError wraps a texture or sound that could not be loaded.
type AssetError struct {
	Kind string // "texture" or "sound"
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
