package freshness

import (
	"testing"
	"time"
)

func daysAgo(now time.Time, d int) *time.Time {
	ts := now.Add(-time.Duration(d) * 24 * time.Hour)
	return &ts
}

func TestClassify_Thresholds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		days       int
		wantStatus Status
	}{
		{"fresh at day 0", 0, StatusUpToDate},
		{"still fresh at day 26", 26, StatusUpToDate},
		{"warning starts at day 27", 27, StatusExpiringSoon},
		{"warning at day 29", 29, StatusExpiringSoon},
		{"outdated at day 30", 30, StatusOutdated},
		{"outdated at day 31", 31, StatusOutdated},
		{"outdated long after", 400, StatusOutdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(daysAgo(now, tt.days), "https://store/meal-plan-1.pdf", nil, now)
			if got.Status != tt.wantStatus {
				t.Errorf("Classify(%d days) = %s, want %s", tt.days, got.Status, tt.wantStatus)
			}
			if got.DaysSinceUpdate != tt.days {
				t.Errorf("DaysSinceUpdate = %d, want %d", got.DaysSinceUpdate, tt.days)
			}
		})
	}
}

func TestClassify_NoArtifactInvariance(t *testing.T) {
	// No URL means none, regardless of every other input.
	now := time.Now()
	old := daysAgo(now, 300)

	for _, url := range []string{"", "pending"} {
		got := Classify(old, url, old, now)
		if got.Status != StatusNone {
			t.Errorf("Classify(url=%q) = %s, want %s", url, got.Status, StatusNone)
		}
		if got.Color != "gray" {
			t.Errorf("Color = %q, want gray", got.Color)
		}
	}
}

func TestClassify_FallbackTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// Nil generatedAt uses the fallback.
	got := Classify(nil, "https://store/x.pdf", daysAgo(now, 31), now)
	if got.Status != StatusOutdated {
		t.Errorf("with fallback 31 days ago: Status = %s, want %s", got.Status, StatusOutdated)
	}

	// Nil generatedAt and nil fallback is treated as freshly generated.
	got = Classify(nil, "https://store/x.pdf", nil, now)
	if got.Status != StatusUpToDate {
		t.Errorf("with no timestamps: Status = %s, want %s", got.Status, StatusUpToDate)
	}
	if got.DaysSinceUpdate != 0 {
		t.Errorf("with no timestamps: DaysSinceUpdate = %d, want 0", got.DaysSinceUpdate)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	// As time advances with no new generation, the status never moves
	// backwards: up-to-date -> expiring-soon -> outdated.
	generated := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rank := map[Status]int{StatusUpToDate: 0, StatusExpiringSoon: 1, StatusOutdated: 2}

	prev := StatusUpToDate
	for day := 0; day <= 40; day++ {
		now := generated.Add(time.Duration(day) * 24 * time.Hour)
		got := Classify(&generated, "https://store/x.pdf", nil, now)
		if rank[got.Status] < rank[prev] {
			t.Fatalf("day %d: status regressed from %s to %s", day, prev, got.Status)
		}
		prev = got.Status
	}
}

func TestClassify_FutureTimestampClampsToZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)

	got := Classify(&future, "https://store/x.pdf", nil, now)
	if got.DaysSinceUpdate != 0 {
		t.Errorf("DaysSinceUpdate = %d, want 0 for future timestamp", got.DaysSinceUpdate)
	}
	if got.Status != StatusUpToDate {
		t.Errorf("Status = %s, want %s", got.Status, StatusUpToDate)
	}
}

func TestClassify_ScenarioOutdatedAt31Days(t *testing.T) {
	now := time.Now()
	got := Classify(daysAgo(now, 31), "https://store/x.pdf", nil, now)

	if got.Status != StatusOutdated {
		t.Errorf("Status = %s, want %s", got.Status, StatusOutdated)
	}
	if got.DaysSinceUpdate != 31 {
		t.Errorf("DaysSinceUpdate = %d, want 31", got.DaysSinceUpdate)
	}
	if got.DaysUntilExpiry != 0 {
		t.Errorf("DaysUntilExpiry = %d, want 0 once outdated", got.DaysUntilExpiry)
	}
}
