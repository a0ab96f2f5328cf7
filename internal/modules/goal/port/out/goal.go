package out

import "context"

// SettingStore is the generic key-value settings table. Get returns
// apperrors.ErrSettingMissing for an absent key.
type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
