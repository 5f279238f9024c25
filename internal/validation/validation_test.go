package validation

import (
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestHabitName(t *testing.T) {
	if err := HabitName("Morning run"); err != nil {
		t.Errorf("unexpected error for valid name: %v", err)
	}
	for _, name := range []string{"", "   ", "\t"} {
		if err := HabitName(name); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestTargetCount(t *testing.T) {
	if err := TargetCount(1); err != nil {
		t.Errorf("unexpected error for count 1: %v", err)
	}
	for _, count := range []int{0, -1} {
		if err := TargetCount(count); err == nil {
			t.Errorf("expected error for count %d", count)
		}
	}
}

func TestFrequency(t *testing.T) {
	for _, f := range []models.Frequency{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly} {
		if err := Frequency(f); err != nil {
			t.Errorf("unexpected error for frequency %q: %v", f, err)
		}
	}
	if err := Frequency("hourly"); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name@example.co.uk", "x+tag@domain.io"}
	for _, email := range valid {
		if err := Email(email); err != nil {
			t.Errorf("unexpected error for %q: %v", email, err)
		}
	}

	invalid := []string{"", "plain", "@domain.com", "user@", "user@domain", "a@@b.com", "user@.com", "user@com."}
	for _, email := range invalid {
		if err := Email(email); err == nil {
			t.Errorf("expected error for %q", email)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("secret"); err != nil {
		t.Errorf("unexpected error for 6-char password: %v", err)
	}
	if err := Password("short"); err == nil {
		t.Error("expected error for 5-char password")
	}
}

func TestDate(t *testing.T) {
	if err := Date("2024-01-31"); err != nil {
		t.Errorf("unexpected error for valid date: %v", err)
	}
	for _, date := range []string{"2024-13-01", "01-02-2024", "2024-1-2", "yesterday", ""} {
		if err := Date(date); err == nil {
			t.Errorf("expected error for date %q", date)
		}
	}
}

func TestHabitColor(t *testing.T) {
	if err := HabitColor(""); err != nil {
		t.Errorf("unexpected error for empty color: %v", err)
	}
	if err := HabitColor(models.HabitColors[0]); err != nil {
		t.Errorf("unexpected error for palette color: %v", err)
	}
	if err := HabitColor("#FFFFFF"); err == nil {
		t.Error("expected error for off-palette color")
	}
}
