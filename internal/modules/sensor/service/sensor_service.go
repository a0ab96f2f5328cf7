package service

import (
	"context"
	"fmt"
	"sync"

	"dwell/internal/modules/sensor/domain"
	sensorout "dwell/internal/modules/sensor/port/out"
	apperrors "dwell/internal/platform/errors"
)

// SensorService owns the provider connection. Reads are safe to call from the
// tracker goroutines concurrently; the underlying gRPC connection multiplexes.
type SensorService struct {
	store sensorout.ManifestStore
	host  sensorout.Host

	mu   sync.Mutex
	conn sensorout.Conn
}

func NewSensorService(store sensorout.ManifestStore, host sensorout.Host) *SensorService {
	return &SensorService{store: store, host: host}
}

func (s *SensorService) Start(ctx context.Context) error {
	manifest, err := s.loadManifest(ctx)
	if err != nil {
		return err
	}
	conn, err := s.host.Connect(ctx, manifest)
	if err != nil {
		return fmt.Errorf("connect sensor provider: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	return nil
}

func (s *SensorService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *SensorService) Check(ctx context.Context) (domain.Manifest, domain.Metadata, error) {
	manifest, err := s.loadManifest(ctx)
	if err != nil {
		return domain.Manifest{}, domain.Metadata{}, err
	}
	conn, err := s.host.Connect(ctx, manifest)
	if err != nil {
		return domain.Manifest{}, domain.Metadata{}, fmt.Errorf("connect sensor provider: %w", err)
	}
	defer conn.Close()

	meta, err := conn.Metadata(ctx)
	if err != nil {
		return domain.Manifest{}, domain.Metadata{}, fmt.Errorf("provider handshake: %w", err)
	}
	return manifest, meta, nil
}

func (s *SensorService) ReadPresence(ctx context.Context, audioThreshold float64) (domain.PresenceReading, error) {
	conn, err := s.current()
	if err != nil {
		return domain.PresenceReading{}, err
	}
	return conn.ReadPresence(ctx, audioThreshold)
}

func (s *SensorService) ReadForeground(ctx context.Context) (domain.ForegroundReading, error) {
	conn, err := s.current()
	if err != nil {
		return domain.ForegroundReading{}, err
	}
	return conn.ReadForeground(ctx)
}

func (s *SensorService) ReadAudio(ctx context.Context) (domain.AudioReading, error) {
	conn, err := s.current()
	if err != nil {
		return domain.AudioReading{}, err
	}
	return conn.ReadAudio(ctx)
}

func (s *SensorService) current() (sensorout.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, apperrors.ErrProviderUnset
	}
	return s.conn, nil
}

func (s *SensorService) loadManifest(ctx context.Context) (domain.Manifest, error) {
	manifest, err := s.store.Load(ctx)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("load provider manifest: %w", err)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, domain.ErrProviderDisabled
	}
	if err := manifest.Validate(); err != nil {
		return domain.Manifest{}, err
	}
	return manifest, nil
}
