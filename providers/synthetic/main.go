// Command synthetic is a sensor provider that fabricates plausible readings.
// It exists for `dwell sensor check`, integration tests and development on
// machines without a platform provider.
package main

import (
	"context"
	"runtime"
	"time"

	"github.com/hashicorp/go-plugin"

	sensorrpc "dwell/internal/modules/sensor/adapter/out/rpc"
)

type server struct {
	started time.Time
}

func (s *server) GetMetadata(context.Context, *sensorrpc.Empty) (*sensorrpc.Metadata, error) {
	return &sensorrpc.Metadata{
		Name:     "synthetic",
		Version:  "1.0.0",
		Platform: runtime.GOOS,
	}, nil
}

func (s *server) ReadPresence(_ context.Context, in *sensorrpc.PresenceRequest) (*sensorrpc.PresenceResponse, error) {
	// The synthetic user is always present and just touched the keyboard.
	return &sensorrpc.PresenceResponse{
		InputIdleMS:    500,
		AudioRendering: in.AudioThreshold <= 0.3,
		FullscreenApp:  false,
		UptimeMS:       time.Since(s.started).Milliseconds(),
	}, nil
}

func (s *server) ReadForeground(context.Context, *sensorrpc.Empty) (*sensorrpc.ForegroundResponse, error) {
	return &sensorrpc.ForegroundResponse{
		Present:        true,
		ProcessID:      4242,
		AppName:        "synthetic-editor",
		ExecutablePath: "/opt/synthetic/editor",
		WindowTitle:    "synthetic-editor — scratch",
	}, nil
}

func (s *server) ReadAudio(context.Context, *sensorrpc.Empty) (*sensorrpc.AudioResponse, error) {
	return &sensorrpc.AudioResponse{
		Present:      true,
		DeviceID:     "synthetic-output-0",
		FriendlyName: "Synthetic Headphones",
		VolumeScalar: 0.42,
		PeakLevel:    0.3,
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: sensorrpc.HandshakeConfig,
		Plugins:         sensorrpc.PluginMap(&server{started: time.Now()}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
