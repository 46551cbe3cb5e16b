package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/profilekeeper/internal/client/cache"
	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// remoteStore exposes client.Client as a profile.Store.
type remoteStore struct {
	client client.Client
}

func (r remoteStore) Lookup(ctx context.Context, key string) (profile.Record, error) {
	rec, err := r.client.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	return profile.Record(rec), nil
}

func (r remoteStore) Update(ctx context.Context, key string, patch profile.Record) error {
	return r.client.Update(ctx, key, patch)
}

// ProfileService opens edit sessions over the cached profile.
type ProfileService struct {
	store profile.Store
	cache *cache.ProfileCache
	clock profile.Clock
	log   logging.Logger
}

func NewProfileService(c client.Client, db *sql.DB, log logging.Logger) *ProfileService {
	return &ProfileService{
		store: remoteStore{client: c},
		cache: cache.NewProfileCache(metadata.NewSQLiteRepository(db)),
		clock: profile.SystemClock{},
		log:   log,
	}
}

// Cached returns the signed-in profile, or nil.
func (s *ProfileService) Cached(ctx context.Context) (profile.Record, error) {
	return s.cache.Read(ctx)
}

// Open activates fs. It returns nil after redirecting to the login screen
// when nobody is signed in.
func (s *ProfileService) Open(ctx context.Context, fs profile.FieldSet, nav profile.Navigator, observer func(profile.Snapshot)) *profile.Session {
	return profile.Activate(ctx, fs, profile.Deps{
		Store:     s.store,
		Cache:     s.cache,
		Navigator: nav,
		Clock:     s.clock,
		Logger:    s.log,
		Observer:  observer,
	})
}
