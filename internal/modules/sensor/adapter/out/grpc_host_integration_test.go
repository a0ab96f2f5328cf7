package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	sensorout "dwell/internal/modules/sensor/adapter/out"
	"dwell/internal/modules/sensor/domain"
)

func TestGRPCHostIntegrationSyntheticProvider(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and launches the synthetic provider")
	}
	binPath := buildSyntheticProvider(t)
	manifest := domain.Manifest{
		Name:     "synthetic",
		Version:  "1.0.0",
		Binary:   binPath,
		Platform: runtime.GOOS,
		Enabled:  true,
	}

	host := sensorout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := host.Connect(ctx, manifest)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	meta, err := conn.Metadata(ctx)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "synthetic" {
		t.Fatalf("metadata name = %s, want synthetic", meta.Name)
	}

	presence, err := conn.ReadPresence(ctx, 0.01)
	if err != nil {
		t.Fatalf("read presence: %v", err)
	}
	if presence.InputIdle <= 0 {
		t.Fatalf("input idle = %v, want positive", presence.InputIdle)
	}

	foreground, err := conn.ReadForeground(ctx)
	if err != nil {
		t.Fatalf("read foreground: %v", err)
	}
	if !foreground.Present || foreground.AppName == "" {
		t.Fatalf("foreground = %+v, want a present app", foreground)
	}

	audio, err := conn.ReadAudio(ctx)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if !audio.Present || audio.DeviceID == "" {
		t.Fatalf("audio = %+v, want a present device", audio)
	}
}

func buildSyntheticProvider(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "dwell-provider")
	cmd := exec.Command("go", "build", "-o", binPath, "./providers/synthetic")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build synthetic provider: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../.."))
}
