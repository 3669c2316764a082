package service

import (
	"context"
	"fmt"

	"github.com/remanmarket/erp-core/internal/port"
)

// Preference flag keys. These are the only persisted UI settings.
const (
	PrefSidebarOpen      = "sidebar.open"
	PrefSidebarCollapsed = "sidebar.collapsed"
)

// Preferences stores the persisted UI flags under their fixed key names.
type Preferences struct {
	repo port.PreferenceRepository
}

func NewPreferences(repo port.PreferenceRepository) *Preferences {
	return &Preferences{repo: repo}
}

func knownPrefKey(key string) bool {
	return key == PrefSidebarOpen || key == PrefSidebarCollapsed
}

func (p *Preferences) SetFlag(ctx context.Context, key string, value bool) error {
	if !knownPrefKey(key) {
		return fmt.Errorf("preference %s: %w", key, ErrNotFound)
	}
	return p.repo.SetFlag(ctx, key, value)
}

func (p *Preferences) Flag(ctx context.Context, key string) (bool, error) {
	if !knownPrefKey(key) {
		return false, fmt.Errorf("preference %s: %w", key, ErrNotFound)
	}
	return p.repo.GetFlag(ctx, key)
}
