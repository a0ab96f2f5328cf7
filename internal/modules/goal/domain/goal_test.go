package domain_test

import (
	"testing"
	"time"

	"dwell/internal/modules/goal/domain"
)

func TestFormatProgressText(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name        string
		current     time.Duration
		goalMinutes int
		want        string
	}{
		{"no goal", 90 * time.Minute, 0, ""},
		{"under whole-hour goal", 77 * time.Minute, 120, "64% of 2h goal"},
		{"under mixed goal", 30 * time.Minute, 150, "20% of 2h 30m goal"},
		{"over by minutes", 144 * time.Minute, 120, "120% - Over goal by 24m"},
		{"over by hours", 200 * time.Minute, 60, "333% - Over goal by 2h 20m"},
		{"exactly at goal", 120 * time.Minute, 120, "100% of 2h goal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.FormatProgressText(tc.current, tc.goalMinutes); got != tc.want {
				t.Fatalf("FormatProgressText(%v, %d) = %q, want %q", tc.current, tc.goalMinutes, got, tc.want)
			}
		})
	}
}

func TestProgressAndRemaining(t *testing.T) {
	t.Parallel()
	if got := domain.Progress(60*time.Minute, 120); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}
	if got := domain.Progress(time.Hour, 0); got != 0 {
		t.Fatalf("progress without goal = %v, want 0", got)
	}
	if got := domain.Remaining(90*time.Minute, 120); got != 30*time.Minute {
		t.Fatalf("remaining = %v, want 30m", got)
	}
	if got := domain.Remaining(130*time.Minute, 120); got != -10*time.Minute {
		t.Fatalf("remaining over goal = %v, want -10m", got)
	}
	if !domain.IsOver(121*time.Minute, 120) {
		t.Fatalf("IsOver(121m, 120) = false, want true")
	}
	if domain.IsOver(120*time.Minute, 120) {
		t.Fatalf("IsOver(120m, 120) = true, want false at exactly the goal")
	}
}
