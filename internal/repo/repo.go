// Package repo implements the typed entity repositories layered on the kv
// store. Each repository owns the in-memory typed view of one bucket and is
// the only writer back to the store for its entity kind. A save re-serializes
// the entire collection (read-modify-write of the whole set); two logically
// concurrent saves are not serialized and the later write wins.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"shopcore/internal/kv"
	"shopcore/pkg/domain"
)

// UUIDGenerator is the default IDGenerator for created entities.
func UUIDGenerator() string { return uuid.NewString() }

// Collection is a generic repository over one persistence bucket holding an
// ordered sequence of entities. Order is seed/insertion order and stable
// across loads.
type Collection[T any] struct {
	store     kv.Store
	bucket    string
	entity    domain.EntityType
	seed      func() []T
	id        func(T) string
	setID     func(*T, string)
	normalize func(*T)
	validate  func(T) error

	clock domain.Clock
	newID domain.IDGenerator
}

// Option configures a repository.
type Option func(*options)

type options struct {
	clock domain.Clock
	newID domain.IDGenerator
}

// WithClock overrides the time source (tests).
func WithClock(clock domain.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDGenerator overrides the identifier generator (tests).
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(o *options) { o.newID = gen }
}

func buildOptions(opts []Option) options {
	o := options{clock: domain.UTCNow, newID: UUIDGenerator}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadAll returns the full collection, seeding the bucket from built-in
// sample data when it is absent or unparseable.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	return kv.ReadOrSeed(ctx, c.store, c.bucket, c.seed())
}

// LoadByID returns the entity with the given identifier.
func (c *Collection[T]) LoadByID(ctx context.Context, id string) (T, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, entity := range all {
		if c.id(entity) == id {
			return entity, nil
		}
	}
	return zero, domain.ErrNotFound{Entity: c.entity, ID: id}
}

// Save upserts entity by its identity field and rewrites the whole
// collection. The entity must already carry an identifier.
func (c *Collection[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T
	if c.id(entity) == "" {
		return zero, domain.ValidationError{Entity: c.entity, Field: "id", Reason: "required on save"}
	}
	c.normalize(&entity)
	if err := c.validate(entity); err != nil {
		return zero, err
	}
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	replaced := false
	for i, existing := range all {
		if c.id(existing) == c.id(entity) {
			all[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, entity)
	}
	if err := c.writeAll(ctx, all); err != nil {
		return zero, err
	}
	return entity, nil
}

// Create assigns an identifier when the draft lacks one, applies schema
// defaults, validates, and appends the entity to the collection.
func (c *Collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if c.id(draft) == "" {
		c.setID(&draft, c.newID())
	}
	c.normalize(&draft)
	if err := c.validate(draft); err != nil {
		return zero, err
	}
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, existing := range all {
		if c.id(existing) == c.id(draft) {
			return zero, domain.ValidationError{Entity: c.entity, Field: "id", Reason: fmt.Sprintf("%s already exists", c.id(draft))}
		}
	}
	all = append(all, draft)
	if err := c.writeAll(ctx, all); err != nil {
		return zero, err
	}
	return draft, nil
}

func (c *Collection[T]) writeAll(ctx context.Context, all []T) error {
	encoded, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.bucket, err)
	}
	if err := c.store.Write(ctx, c.bucket, string(encoded)); err != nil {
		return fmt.Errorf("write %s: %w", c.bucket, err)
	}
	return nil
}
