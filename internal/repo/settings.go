package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"shopcore/internal/kv"
	"shopcore/internal/seed"
	"shopcore/pkg/domain"
)

// BucketSettings is the persistence key holding the configuration document.
const BucketSettings = "settings"

// SettingsRepo owns the nested store configuration document. Unlike the
// collection repositories it persists a single document, and updates are
// always shallow merges into one named section.
type SettingsRepo struct {
	store kv.Store
}

// NewSettings constructs the settings repository over store.
func NewSettings(store kv.Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// Load returns the full configuration document, seeding defaults when the
// bucket is absent or unparseable.
func (r *SettingsRepo) Load(ctx context.Context) (domain.Settings, error) {
	return kv.ReadOrSeed(ctx, r.store, BucketSettings, seed.Settings())
}

// Section returns one named configuration section.
func (r *SettingsRepo) Section(ctx context.Context, name string) (domain.SettingsSection, error) {
	settings, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	section, ok := settings[name]
	if !ok {
		return nil, domain.ErrNotFound{Entity: domain.EntitySettings, ID: name}
	}
	return section, nil
}

// UpdateSection shallow-merges partial into the named section and persists
// the document. Absent fields retain their prior values; the section is never
// replaced wholesale. The merged section is returned.
func (r *SettingsRepo) UpdateSection(ctx context.Context, name string, partial domain.SettingsSection) (domain.SettingsSection, error) {
	settings, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	merged := settings.Clone()
	section, ok := merged[name]
	if !ok {
		return nil, domain.ErrNotFound{Entity: domain.EntitySettings, ID: name}
	}
	for k, v := range partial {
		section[k] = v
	}
	merged[name] = section
	if err := r.write(ctx, merged); err != nil {
		return nil, err
	}
	return section, nil
}

func (r *SettingsRepo) write(ctx context.Context, settings domain.Settings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", BucketSettings, err)
	}
	if err := r.store.Write(ctx, BucketSettings, string(encoded)); err != nil {
		return fmt.Errorf("write %s: %w", BucketSettings, err)
	}
	return nil
}
