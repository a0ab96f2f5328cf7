package apps

import (
	"testing"

	reportdto "dwell/internal/modules/report/dto"
)

func TestSharesUseDayTotalNotListedSum(t *testing.T) {
	t.Parallel()
	m := New()

	// Top-2 of a 2h day: the truncated tail must not inflate the shares.
	entries := []reportdto.AppEntry{
		{AppName: "editor", Seconds: 3600},
		{AppName: "browser", Seconds: 1800},
	}
	m.SetApps(entries, 7200)

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	wantShares := []float64{0.5, 0.25}
	for i, item := range items {
		app, ok := item.(appItem)
		if !ok {
			t.Fatalf("item %d is %T, want appItem", i, item)
		}
		if app.share != wantShares[i] {
			t.Fatalf("share[%d] = %v, want %v", i, app.share, wantShares[i])
		}
	}

	// A day with no focus time renders zero shares rather than dividing by it.
	m.SetApps(entries, 0)
	for i, item := range m.list.Items() {
		if share := item.(appItem).share; share != 0 {
			t.Fatalf("share[%d] = %v, want 0 when the day has no focus time", i, share)
		}
	}
}
