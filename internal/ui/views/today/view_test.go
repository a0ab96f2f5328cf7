package today

import (
	"strings"
	"testing"

	goaldto "dwell/internal/modules/goal/dto"
)

func barCounts(bar string) (filled, empty int) {
	return strings.Count(bar, "█"), strings.Count(bar, "░")
}

func TestGoalBarFillTracksProgressFraction(t *testing.T) {
	t.Parallel()
	// width 96 gives a 40-cell bar.
	m := Model{width: 96}

	cases := []struct {
		name       string
		goal       goaldto.Status
		wantFilled int
	}{
		{"empty at zero", goaldto.Status{HasGoal: true, Progress: 0}, 0},
		{"half at half of goal", goaldto.Status{HasGoal: true, Progress: 0.5}, 20},
		{"nearly full near goal", goaldto.Status{HasGoal: true, Progress: 0.95}, 38},
		{"clamped when over", goaldto.Status{HasGoal: true, Progress: 1.3, OverGoal: true}, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m.goal = tc.goal
			filled, empty := barCounts(m.renderGoalBar())
			if filled != tc.wantFilled {
				t.Fatalf("filled cells = %d, want %d", filled, tc.wantFilled)
			}
			if filled+empty != 40 {
				t.Fatalf("bar cells = %d, want 40", filled+empty)
			}
		})
	}
}
