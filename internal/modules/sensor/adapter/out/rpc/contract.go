package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey         = "dwell"
	serviceName          = "dwell.sensor.v1.SensorProvider"
	jsonCodecName        = "json"
	methodGetMetadata    = "/" + serviceName + "/GetMetadata"
	methodReadPresence   = "/" + serviceName + "/ReadPresence"
	methodReadForeground = "/" + serviceName + "/ReadForeground"
	methodReadAudio      = "/" + serviceName + "/ReadAudio"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "DWELL_SENSOR",
	MagicCookieValue: "dwell",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

type PresenceRequest struct {
	// AudioThreshold is the near-silence floor the provider applies when
	// answering AudioRendering (0.0-1.0 peak scale).
	AudioThreshold float64 `json:"audio_threshold"`
}

type PresenceResponse struct {
	InputIdleMS    int64 `json:"input_idle_ms"`
	AudioRendering bool  `json:"audio_rendering"`
	FullscreenApp  bool  `json:"fullscreen_app"`
	UptimeMS       int64 `json:"uptime_ms"`
}

type ForegroundResponse struct {
	Present        bool   `json:"present"`
	ProcessID      int32  `json:"process_id"`
	AppName        string `json:"app_name"`
	ExecutablePath string `json:"executable_path"`
	WindowTitle    string `json:"window_title"`
}

type AudioResponse struct {
	Present      bool    `json:"present"`
	DeviceID     string  `json:"device_id"`
	FriendlyName string  `json:"friendly_name"`
	VolumeScalar float64 `json:"volume_scalar"`
	PeakLevel    float64 `json:"peak_level"`
}

type SensorProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ReadPresence(ctx context.Context, in *PresenceRequest) (*PresenceResponse, error)
	ReadForeground(ctx context.Context, in *Empty) (*ForegroundResponse, error)
	ReadAudio(ctx context.Context, in *Empty) (*AudioResponse, error)
}

type SensorProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ReadPresence(ctx context.Context, in *PresenceRequest) (*PresenceResponse, error)
	ReadForeground(ctx context.Context) (*ForegroundResponse, error)
	ReadAudio(ctx context.Context) (*AudioResponse, error)
}

type sensorProviderClient struct {
	conn *grpc.ClientConn
}

func NewSensorProviderClient(conn *grpc.ClientConn) SensorProviderClient {
	return &sensorProviderClient{conn: conn}
}

func (c *sensorProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sensorProviderClient) ReadPresence(ctx context.Context, in *PresenceRequest) (*PresenceResponse, error) {
	out := &PresenceResponse{}
	if err := c.conn.Invoke(ctx, methodReadPresence, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sensorProviderClient) ReadForeground(ctx context.Context) (*ForegroundResponse, error) {
	out := &ForegroundResponse{}
	if err := c.conn.Invoke(ctx, methodReadForeground, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sensorProviderClient) ReadAudio(ctx context.Context) (*AudioResponse, error) {
	out := &AudioResponse{}
	if err := c.conn.Invoke(ctx, methodReadAudio, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSensorProviderServer(server grpc.ServiceRegistrar, impl SensorProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SensorProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ReadPresence",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &PresenceRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ReadPresence(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadPresence}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*PresenceRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ReadPresence(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ReadForeground",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ReadForeground(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadForeground}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ReadForeground(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ReadAudio",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ReadAudio(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodReadAudio}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ReadAudio(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/sensor-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SensorProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSensorProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSensorProviderClient(conn), nil
}

func PluginMap(impl SensorProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
