package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	sensorrpc "dwell/internal/modules/sensor/adapter/out/rpc"
	"dwell/internal/modules/sensor/domain"
	sensorout "dwell/internal/modules/sensor/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() sensorout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) Connect(_ context.Context, manifest domain.Manifest) (sensorout.Conn, error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  sensorrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          sensorrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start provider process: %w", err)
	}
	raw, err := rpcClient.Dispense(sensorrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense provider: %w", err)
	}
	typed, ok := raw.(sensorrpc.SensorProviderClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("provider rpc client type mismatch")
	}
	return &grpcConn{client: client, rpc: typed}, nil
}

type grpcConn struct {
	client *plugin.Client
	rpc    sensorrpc.SensorProviderClient
}

func (c *grpcConn) Metadata(ctx context.Context) (domain.Metadata, error) {
	callCtx, cancel := callContext(ctx)
	defer cancel()
	meta, err := c.rpc.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, wrapTimeout(callCtx, err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Platform: meta.Platform}, nil
}

func (c *grpcConn) ReadPresence(ctx context.Context, audioThreshold float64) (domain.PresenceReading, error) {
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := c.rpc.ReadPresence(callCtx, &sensorrpc.PresenceRequest{AudioThreshold: audioThreshold})
	if err != nil {
		return domain.PresenceReading{}, wrapTimeout(callCtx, err)
	}
	return domain.PresenceReading{
		InputIdle:      time.Duration(resp.InputIdleMS) * time.Millisecond,
		AudioRendering: resp.AudioRendering,
		FullscreenApp:  resp.FullscreenApp,
		Uptime:         time.Duration(resp.UptimeMS) * time.Millisecond,
	}, nil
}

func (c *grpcConn) ReadForeground(ctx context.Context) (domain.ForegroundReading, error) {
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := c.rpc.ReadForeground(callCtx)
	if err != nil {
		return domain.ForegroundReading{}, wrapTimeout(callCtx, err)
	}
	return domain.ForegroundReading{
		Present:        resp.Present,
		ProcessID:      int(resp.ProcessID),
		AppName:        resp.AppName,
		ExecutablePath: resp.ExecutablePath,
		WindowTitle:    resp.WindowTitle,
	}, nil
}

func (c *grpcConn) ReadAudio(ctx context.Context) (domain.AudioReading, error) {
	callCtx, cancel := callContext(ctx)
	defer cancel()
	resp, err := c.rpc.ReadAudio(callCtx)
	if err != nil {
		return domain.AudioReading{}, wrapTimeout(callCtx, err)
	}
	return domain.AudioReading{
		Present:      resp.Present,
		DeviceID:     resp.DeviceID,
		FriendlyName: resp.FriendlyName,
		VolumeScalar: resp.VolumeScalar,
		PeakLevel:    resp.PeakLevel,
	}, nil
}

func (c *grpcConn) Close() {
	c.client.Kill()
}

func callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}

func wrapTimeout(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err)
	}
	return err
}
