package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// HabitName requires a non-empty name after trimming.
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	return nil
}

// TargetCount requires a positive per-period target.
func TargetCount(count int) error {
	if count < 1 {
		return fmt.Errorf("target count must be at least 1")
	}
	return nil
}

// Frequency requires one of the known frequency values.
func Frequency(f models.Frequency) error {
	if !f.Valid() {
		return fmt.Errorf("invalid frequency %q (expected daily, weekly, or monthly)", f)
	}
	return nil
}

// Email applies the same loose shape check a browser email input does:
// something before and after a single separating @, and a dot in the domain.
func Email(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fmt.Errorf("email cannot be empty")
	}
	at := strings.Index(trimmed, "@")
	if at <= 0 || at != strings.LastIndex(trimmed, "@") || at == len(trimmed)-1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	domain := trimmed[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// Password enforces the minimum length accepted at registration.
func Password(password string) error {
	if len(password) < constants.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	}
	return nil
}

// Date requires a YYYY-MM-DD calendar day.
func Date(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return nil
}

// HabitColor accepts an empty color (a palette default is assigned) or one
// of the palette entries.
func HabitColor(color string) error {
	if color == "" {
		return nil
	}
	for _, c := range models.HabitColors {
		if strings.EqualFold(c, color) {
			return nil
		}
	}
	return fmt.Errorf("unknown color %q (expected one of %s)", color, strings.Join(models.HabitColors, ", "))
}
