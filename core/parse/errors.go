package parse

import (
	"errors"
	"fmt"

	"github.com/leofalp/characard/internal/utils"
)

// ErrNoEmbeddedData is returned when there is no candidate text at all.
var ErrNoEmbeddedData = errors.New("characard: no embedded card data")

// ErrUnrecoverableData is matched by *UnrecoverableError through errors.Is.
var ErrUnrecoverableData = errors.New("characard: embedded data is not recoverable JSON")

// UnrecoverableError reports that no candidate produced a JSON value.
//
// Example:
//
//	var ue *parse.UnrecoverableError
//	if errors.As(err, &ue) {
//	    log.Printf("first candidate was: %s", ue.RawText)
//	}
type UnrecoverableError struct {
	// RawText is the text of the first candidate, kept for diagnostics.
	RawText string
	// Attempts is the number of candidates that were tried.
	Attempts int
}

func (e *UnrecoverableError) Error() string {
	return fmt.Sprintf("%s (%d candidate(s), first: %q)",
		ErrUnrecoverableData, e.Attempts, utils.TruncateString(e.RawText, 80))
}

// Is reports whether target is ErrUnrecoverableData.
func (e *UnrecoverableError) Is(target error) bool {
	return target == ErrUnrecoverableData
}
