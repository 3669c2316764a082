package port

import "context"

// PreferenceRepository persists UI preference flags under fixed key names.
type PreferenceRepository interface {
	SetFlag(ctx context.Context, key string, value bool) error

	// GetFlag returns the stored flag, or false when the key was never set.
	GetFlag(ctx context.Context, key string) (bool, error)
}
