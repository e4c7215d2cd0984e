package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/templui/goalboard/internal/model"
)

// ValidateDeadline requires a YYYY-MM-DD date that is not before today.
// Today starts at local midnight of now.
func ValidateDeadline(s string, now time.Time) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("target date is required")
	}

	d, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return errors.New("please enter a valid date")
	}

	if d.Before(model.DateOf(now)) {
		return errors.New("target date cannot be in the past")
	}

	return nil
}

// ValidateCategory requires one of the known categories.
func ValidateCategory(s string) error {
	if s == "" {
		return errors.New("please select a category")
	}
	if !model.Category(s).Valid() {
		return errors.New("please select a valid category")
	}
	return nil
}
