package domain_test

import (
	"testing"

	"dwell/internal/modules/sensor/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "synthetic", Version: "1.0.0", Binary: "/opt/dwell/provider", Enabled: true}},
		{name: "missing name", manifest: domain.Manifest{Version: "1.0.0", Binary: "/opt/dwell/provider", Enabled: true}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "synthetic", Binary: "/opt/dwell/provider", Enabled: true}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "synthetic", Version: "1.0.0", Enabled: true}, shouldErr: true},
		{name: "relative binary", manifest: domain.Manifest{Name: "synthetic", Version: "1.0.0", Binary: "provider", Enabled: true}, shouldErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
