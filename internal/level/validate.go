package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/match3/internal/board"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// codes maps engine config fields to validation codes.
var codes = map[string]string{
	"width":       "INVALID_SIZE",
	"height":      "INVALID_SIZE",
	"colors":      "INVALID_COLORS",
	"min_match":   "INVALID_MIN_MATCH",
	"moves":       "NO_LIMIT",
	"time_limit":  "NO_LIMIT",
	"goals":       "INVALID_GOAL",
	"holes":       "INVALID_COORD",
	"jelly":       "INVALID_COORD",
	"locked":      "INVALID_COORD",
	"layout":      "INVALID_LAYOUT",
	"combo":       "INVALID_COMBO",
	"base_points": "INVALID_CONFIG",
}

// Validate checks that a level can be played.
func Validate(l Level) error {
	if l.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}

	err := l.ToConfig().Validate()
	if err == nil {
		return nil
	}
	var cerr *board.ConfigError
	if !errors.As(err, &cerr) {
		return ValidationError{Code: "INVALID_CONFIG", Message: err.Error()}
	}
	code, ok := codes[cerr.Field]
	if !ok {
		code = "INVALID_CONFIG"
	}
	return ValidationError{
		Code:    code,
		Message: fmt.Sprintf("level %s: %s %s", l.ID, cerr.Field, cerr.Message),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
