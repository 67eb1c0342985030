package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mindcalm/internal/constants"
)

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string is a YYYY-MM-DD date.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ParseDay resolves a --date flag. Empty and "today" mean now, "yesterday"
// is 24 hours earlier, and a YYYY-MM-DD date keeps now's clock time so entries
// backdated to the same day still sort in the order they were logged.
func ParseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today or yesterday)", s)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// DaysUntil counts calendar days from now's date to a YYYY-MM-DD date.
// Past dates are negative.
func DaysUntil(dateStr string, now time.Time) (int, error) {
	d, err := time.ParseInLocation(constants.DateFormat, dateStr, now.Location())
	if err != nil {
		return 0, err
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	// Round absorbs the 23h/25h days around DST changes.
	return int(d.Sub(today).Round(24*time.Hour) / (24 * time.Hour)), nil
}

// FormatSeconds renders a duration in seconds as M:SS.
func FormatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
