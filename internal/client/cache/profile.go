// Package cache adapts the local metadata store to the profile.Cache contract:
// a single slot holding the signed-in profile as JSON.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/metadata"
)

// ProfileKey is the metadata key of the cached profile.
const ProfileKey = "user"

type ProfileCache struct {
	repo metadata.Repository
}

func NewProfileCache(repo metadata.Repository) *ProfileCache {
	return &ProfileCache{repo: repo}
}

// Read returns the cached profile, or (nil, nil) when none is stored.
func (c *ProfileCache) Read(ctx context.Context) (profile.Record, error) {
	raw, err := c.repo.Get(ctx, ProfileKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var rec profile.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return rec, nil
}

// Write replaces the cached profile.
func (c *ProfileCache) Write(ctx context.Context, rec profile.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return c.repo.Set(ctx, ProfileKey, raw)
}

// Clear removes the cached profile.
func (c *ProfileCache) Clear(ctx context.Context) error {
	return c.repo.Delete(ctx, ProfileKey)
}
