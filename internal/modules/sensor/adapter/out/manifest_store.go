package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dwell/internal/modules/sensor/domain"
	sensorout "dwell/internal/modules/sensor/port/out"
	apperrors "dwell/internal/platform/errors"
)

type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) sensorout.ManifestStore {
	return &FileManifestStore{path: path}
}

func (s *FileManifestStore) Load(_ context.Context) (domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Manifest{}, fmt.Errorf("%w: %s", apperrors.ErrProviderUnset, s.path)
		}
		return domain.Manifest{}, fmt.Errorf("read provider manifest: %w", err)
	}
	var manifest domain.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return domain.Manifest{}, fmt.Errorf("decode provider manifest: %w", err)
	}
	if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
		manifest.Binary = filepath.Clean(filepath.Join(filepath.Dir(s.path), manifest.Binary))
	}
	return manifest, nil
}
