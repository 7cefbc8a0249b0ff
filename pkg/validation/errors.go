package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is wrapped by every ProfileError
var ErrInvalidProfile = errors.New("invalid device profile")

// ProfileError reports every error level problem found in one profile
type ProfileError struct {
	Source string
	Errors []ValidationError
}

func (e *ProfileError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.Error())
	}
	source := e.Source
	if source == "" {
		source = "<input>"
	}
	return fmt.Sprintf("%s: %s (%d problems): %s", ErrInvalidProfile, source, len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ProfileError) Unwrap() error {
	return ErrInvalidProfile
}
