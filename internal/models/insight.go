package models

import (
	"fmt"
	"time"
)

type Insight struct {
	Text           string   `json:"text"`
	RelatedMetrics []string `json:"relatedMetrics"`
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// TimeRange selects the analytics window.
type TimeRange string

const (
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	Range90d TimeRange = "90d"
	RangeAll TimeRange = "all"
)

var TimeRanges = []TimeRange{Range7d, Range30d, Range90d, RangeAll}

// ParseTimeRange validates a range flag value.
func ParseTimeRange(s string) (TimeRange, error) {
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid time range %q (want 7d, 30d, 90d or all)", s)
}

// Days returns the window length, or 0 for all-time.
func (r TimeRange) Days() int {
	switch r {
	case Range7d:
		return 7
	case Range30d:
		return 30
	case Range90d:
		return 90
	}
	return 0
}
