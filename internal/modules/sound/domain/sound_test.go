package domain_test

import (
	"testing"

	"dwell/internal/modules/sound/domain"
)

func TestClassifyDevice(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		base  float64
		class domain.DeviceType
	}{
		{name: "USB Headphones (Realtek)", base: 100, class: domain.DeviceHeadphones},
		{name: "Wireless Earphones", base: 102, class: domain.DeviceEarphones},
		{name: "Pixel Earbuds Pro", base: 102, class: domain.DeviceEarphones},
		{name: "Gaming Headset 7.1", base: 98, class: domain.DeviceHeadsets},
		{name: "Desk Speakers", base: 90, class: domain.DeviceSpeakers},
		{name: "HDMI Output", base: 95, class: domain.DeviceUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := domain.ClassifyDevice(tc.name)
			if got != tc.class {
				t.Fatalf("class = %s, want %s", got, tc.class)
			}
			if got.BaseLevel() != tc.base {
				t.Fatalf("base level = %v, want %v", got.BaseLevel(), tc.base)
			}
		})
	}
}

func TestObserveAlertFiresExactlyOnce(t *testing.T) {
	t.Parallel()
	s := &domain.Session{DeviceType: domain.DeviceHeadphones}

	fires := 0
	for i := 0; i < 40; i++ {
		if s.Observe(0.9, 1, 85, 30) { // estimated 90 dB
			fires++
		}
	}
	if fires != 1 {
		t.Fatalf("alert fired %d times, want 1", fires)
	}
	if s.Alert != domain.AlertFired {
		t.Fatalf("alert state = %v, want fired", s.Alert)
	}
	if s.HarmfulSeconds != 30 {
		t.Fatalf("harmful seconds = %d, want accrual frozen at 30", s.HarmfulSeconds)
	}
	if s.ListeningSeconds != 40 {
		t.Fatalf("listening seconds = %d, want 40", s.ListeningSeconds)
	}
}

func TestObserveAverageIsDecayingSmoother(t *testing.T) {
	t.Parallel()
	s := &domain.Session{DeviceType: domain.DeviceSpeakers}

	s.Observe(0.4, 1, 85, 30)
	if s.AvgVolume != 0.4 {
		t.Fatalf("first sample sets the average, got %v", s.AvgVolume)
	}
	s.Observe(0.8, 1, 85, 30)
	if s.AvgVolume != 0.6 {
		t.Fatalf("avg = %v, want 0.6", s.AvgVolume)
	}
	if s.EstimatedMaxDB != 0.8*90 {
		t.Fatalf("estimated max = %v, want %v", s.EstimatedMaxDB, 0.8*90)
	}
}
