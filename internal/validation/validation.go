// Package validation holds the stateless field validators used by the
// services before any mutation. Every returned error carries a message
// suitable for direct display.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/models"
)

const (
	MinPasswordLength  = 8
	MinUsernameLength  = 3
	MaxUsernameLength  = 20
	MinTaskTitleLength = 1
	MaxTaskTitleLength = 200
	MaxDescription     = 1000
	MaxTagLength       = 20
	MaxTagsPerTask     = 10
	MaxCategoryName    = 50
)

var validate = validator.New()

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Required fails when value is empty or whitespace-only.
func Required(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validationf("%s is required", fieldName)
	}
	return nil
}

// Email validates an email address.
func Email(value string) error {
	if err := validate.Var(value, "required,email"); err != nil {
		return apperrors.Validationf("please enter a valid email address")
	}
	return nil
}

// Password enforces password strength: minimum length plus at least one
// uppercase letter, one lowercase letter, one digit and one special
// character. Lengths here and below count characters, not bytes.
func Password(value string) error {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return apperrors.Validationf("password must be at least %d characters long", MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return apperrors.Validationf("password must contain at least one uppercase letter")
	case !hasLower:
		return apperrors.Validationf("password must contain at least one lowercase letter")
	case !hasDigit:
		return apperrors.Validationf("password must contain at least one number")
	case !hasSpecial:
		return apperrors.Validationf("password must contain at least one special character")
	}
	return nil
}

// Username validates length and allowed characters.
func Username(value string) error {
	if utf8.RuneCountInString(value) < MinUsernameLength {
		return apperrors.Validationf("username must be at least %d characters long", MinUsernameLength)
	}
	if utf8.RuneCountInString(value) > MaxUsernameLength {
		return apperrors.Validationf("username cannot exceed %d characters", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(value) {
		return apperrors.Validationf("username can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// TaskTitle validates a task title.
func TaskTitle(value string) error {
	if utf8.RuneCountInString(value) < MinTaskTitleLength {
		return apperrors.Validationf("task title is required")
	}
	if utf8.RuneCountInString(value) > MaxTaskTitleLength {
		return apperrors.Validationf("task title cannot exceed %d characters", MaxTaskTitleLength)
	}
	return nil
}

// TaskDescription validates a task description.
func TaskDescription(value string) error {
	if utf8.RuneCountInString(value) > MaxDescription {
		return apperrors.Validationf("task description cannot exceed %d characters", MaxDescription)
	}
	return nil
}

// Tag validates a single tag.
func Tag(value string) error {
	if value == "" {
		return apperrors.Validationf("tag cannot be empty")
	}
	if utf8.RuneCountInString(value) > MaxTagLength {
		return apperrors.Validationf("tag cannot exceed %d characters", MaxTagLength)
	}
	if strings.Contains(value, ",") {
		return apperrors.Validationf("tags cannot contain commas")
	}
	return nil
}

// Tags validates a tag list.
func Tags(values []string) error {
	if len(values) > MaxTagsPerTask {
		return apperrors.Validationf("cannot have more than %d tags", MaxTagsPerTask)
	}
	for _, tag := range values {
		if err := Tag(tag); err != nil {
			return err
		}
	}
	return nil
}

// CategoryName validates a category name.
func CategoryName(value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validationf("category name is required")
	}
	if utf8.RuneCountInString(value) > MaxCategoryName {
		return apperrors.Validationf("category name cannot exceed %d characters", MaxCategoryName)
	}
	return nil
}

// Color validates a display color in hex notation.
func Color(value string) error {
	if err := validate.Var(value, "required,hexcolor"); err != nil {
		return apperrors.Validationf("please enter a valid hex color")
	}
	return nil
}

// Priority validates priority enum membership.
func Priority(value models.TaskPriority) error {
	if !value.Valid() {
		return apperrors.Validationf("invalid priority value %q", string(value))
	}
	return nil
}

// Status validates status enum membership.
func Status(value models.TaskStatus) error {
	if !value.Valid() {
		return apperrors.Validationf("invalid status value %q", string(value))
	}
	return nil
}

// Theme validates a theme name.
func Theme(value string) error {
	if value != models.ThemeLight && value != models.ThemeDark {
		return apperrors.Validationf("theme must be %q or %q", models.ThemeLight, models.ThemeDark)
	}
	return nil
}

// PositiveInt validates a positive integer field such as a recurrence
// interval.
func PositiveInt(value int, fieldName string) error {
	if value <= 0 {
		return apperrors.Validationf("%s must be a positive number", fieldName)
	}
	return nil
}

// Recurring validates a recurring pattern when present.
func Recurring(p *models.RecurringPattern) error {
	if p == nil {
		return nil
	}
	switch p.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return apperrors.Validationf("invalid recurrence frequency %q", string(p.Frequency))
	}
	if err := PositiveInt(p.Interval, "recurrence interval"); err != nil {
		return err
	}
	if p.Count < 0 {
		return apperrors.Validationf("recurrence count cannot be negative")
	}
	return nil
}
