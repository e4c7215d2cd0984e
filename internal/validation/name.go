package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateGoalName validates a goal title: required, 3 to 50 characters.
func ValidateGoalName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("goal title is required")
	}

	n := utf8.RuneCountInString(name)
	if n < 3 {
		return errors.New("goal title must be at least 3 characters")
	}
	if n > 50 {
		return errors.New("goal title must be less than 50 characters")
	}

	return nil
}
