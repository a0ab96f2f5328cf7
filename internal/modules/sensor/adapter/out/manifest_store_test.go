package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	sensorout "dwell/internal/modules/sensor/adapter/out"
	apperrors "dwell/internal/platform/errors"
)

func TestManifestLoadResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "provider.yaml")
	raw := []byte(`name: synthetic
version: 1.0.0
binary: ./dwell-provider
platform: linux
enabled: true
`)
	if err := os.WriteFile(manifestPath, raw, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := sensorout.NewFileManifestStore(manifestPath).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "synthetic" || !manifest.Enabled {
		t.Fatalf("manifest = %+v, want synthetic/enabled", manifest)
	}
	want := filepath.Join(dir, "dwell-provider")
	if manifest.Binary != want {
		t.Fatalf("binary = %s, want %s resolved against the manifest dir", manifest.Binary, want)
	}
	if err := manifest.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestManifestMissingFile(t *testing.T) {
	t.Parallel()
	store := sensorout.NewFileManifestStore(filepath.Join(t.TempDir(), "provider.yaml"))
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrProviderUnset) {
		t.Fatalf("load missing manifest: err = %v, want ErrProviderUnset", err)
	}
}
