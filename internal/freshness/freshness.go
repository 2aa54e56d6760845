// Package freshness derives the age-based status of a plan artifact.
//
// The status is computed from the last-generation timestamp every time it is
// displayed, never persisted. That keeps it impossible for the shown status
// to drift from the underlying timestamp.
package freshness

import "time"

// Status is one of the four freshness states shown to the coach.
type Status string

const (
	StatusNone         Status = "none"
	StatusUpToDate     Status = "up-to-date"
	StatusExpiringSoon Status = "expiring-soon"
	StatusOutdated     Status = "outdated"
)

// A plan is considered expired ExpiryDays after generation, and the coach is
// warned WarningDays before that (so starting at day ExpiryDays-WarningDays).
const (
	ExpiryDays  = 30
	WarningDays = 3
)

// placeholderURL is the legacy "no artifact yet" marker some old records
// carry instead of an empty string.
const placeholderURL = "pending"

// Classification is the derived freshness of one (client, kind) pair.
// DaysSinceUpdate and DaysUntilExpiry are only meaningful when Status is
// not StatusNone.
type Classification struct {
	Status          Status `json:"status"`
	Color           string `json:"color"`
	DaysSinceUpdate int    `json:"daysSinceUpdate,omitempty"`
	DaysUntilExpiry int    `json:"daysUntilExpiry,omitempty"`
}

// Classify maps a pointer URL and its generation timestamp to a
// Classification. It is total: every input combination yields exactly one
// result, no errors.
//
// A missing generatedAt falls back to the owning record's own updated
// timestamp, and failing that to now — records created before timestamp
// tracking are optimistically treated as freshly generated.
func Classify(generatedAt *time.Time, pointerURL string, fallback *time.Time, now time.Time) Classification {
	if pointerURL == "" || pointerURL == placeholderURL {
		return Classification{Status: StatusNone, Color: colorFor(StatusNone)}
	}

	ts := now
	switch {
	case generatedAt != nil:
		ts = *generatedAt
	case fallback != nil:
		ts = *fallback
	}

	days := int(now.Sub(ts).Hours() / 24)
	if days < 0 {
		days = 0
	}

	status := StatusUpToDate
	switch {
	case days >= ExpiryDays:
		status = StatusOutdated
	case ExpiryDays-days <= WarningDays:
		status = StatusExpiringSoon
	}

	c := Classification{
		Status:          status,
		Color:           colorFor(status),
		DaysSinceUpdate: days,
	}
	if status != StatusOutdated {
		c.DaysUntilExpiry = ExpiryDays - days
	}
	return c
}

func colorFor(s Status) string {
	switch s {
	case StatusUpToDate:
		return "green"
	case StatusExpiringSoon:
		return "orange"
	case StatusOutdated:
		return "red"
	default:
		return "gray"
	}
}
