// Package validation checks caller-supplied input before it reaches the
// gateway. Precondition failures here are caller errors, distinct from
// the store's silent no-ops when no family is loaded.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"famboard/internal/models"
)

const (
	maxNameLength    = 50
	maxTitleLength   = 200
	maxContentLength = 2000
	maxLabelLength   = 30
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateMemberName checks a member display name
func ValidateMemberName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("member name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("member name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateNewMember checks all fields of a member creation request.
// Empty status and theme color are allowed; the store fills in defaults.
func ValidateNewMember(m models.NewMember) error {
	if err := ValidateMemberName(m.Name); err != nil {
		return err
	}
	if !models.ValidMemberType(m.Type) {
		return fmt.Errorf("invalid member type: %s", m.Type)
	}
	if m.Status != "" && !models.ValidMemberStatus(m.Status) {
		return fmt.Errorf("invalid member status: %s", m.Status)
	}
	if m.ThemeColor != "" && !hexColorRegexp.MatchString(m.ThemeColor) {
		return fmt.Errorf("invalid theme color: %s", m.ThemeColor)
	}
	return nil
}

// ValidateFamilyName checks a family display name
func ValidateFamilyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("family name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("family name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidateTaskTitle checks a task title
func ValidateTaskTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("task title is required")
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("task title must be at most %d characters", maxTitleLength)
	}
	return nil
}

// ValidateMessageContent checks a message body
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("message content is required")
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("message must be at most %d characters", maxContentLength)
	}
	return nil
}

// ValidateButtonLabel checks a custom button label
func ValidateButtonLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.New("button label is required")
	}
	if len(label) > maxLabelLength {
		return fmt.Errorf("button label must be at most %d characters", maxLabelLength)
	}
	return nil
}

// ValidateNewLog checks all fields of a log creation request
func ValidateNewLog(l models.NewLog) error {
	if !models.ValidLogType(l.Type) {
		return fmt.Errorf("invalid log type: %s", l.Type)
	}
	if len(l.TargetMemberIDs) == 0 {
		return errors.New("log must target at least one member")
	}
	if l.CreatedByMemberID == "" {
		return errors.New("log creator is required")
	}
	if l.Type == models.LogCustomButton && l.CustomButtonID == "" {
		return errors.New("custom button log requires a button id")
	}
	return nil
}
