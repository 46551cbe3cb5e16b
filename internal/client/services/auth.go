// Package services contains application services for the ProfileKeeper
// client. They sit between the CLI and the transport/local storage layers.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/profilekeeper/internal/client/cache"
	"github.com/dmitrijs2005/profilekeeper/internal/client/client"
	"github.com/dmitrijs2005/profilekeeper/internal/client/profile"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
)

// AccessTokenKey is the metadata key of the persisted access token.
const AccessTokenKey = "access_token"

// AuthService defines the account operations of the CLI.
//
//   - Register: create an account on the server.
//   - Login: authenticate, then persist the token and seed the profile cache.
//   - Restore: reload a previous login from local storage.
//   - Logout: forget the token and wipe local data.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte, fields map[string]string) error
	Login(ctx context.Context, email string, password []byte) (profile.Record, error)
	Restore(ctx context.Context) (profile.Record, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, email string, password []byte, fields map[string]string) error {
	return a.client.Register(ctx, email, string(password), fields)
}

// Login authenticates against the server and stores the session locally in
// one transaction. The returned record is what the cache now holds.
func (a *authService) Login(ctx context.Context, email string, password []byte) (profile.Record, error) {
	token, prof, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	rec := profile.Record(prof)
	if rec[profile.KeyField] == "" {
		rec = rec.Clone()
		rec[profile.KeyField] = email
	}

	if err := a.saveSession(ctx, token, rec); err != nil {
		a.client.SetAccessToken("")
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return rec, nil
}

func (a *authService) saveSession(ctx context.Context, token string, rec profile.Record) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		return cache.NewProfileCache(repo).Write(ctx, rec)
	})
}

// Restore reattaches a persisted token to the client and returns the cached
// profile. Both are absent when nobody is logged in.
func (a *authService) Restore(ctx context.Context) (profile.Record, error) {
	repo := a.getMetadataRepo(a.db)

	token, err := repo.Get(ctx, AccessTokenKey)
	if err != nil {
		return nil, err
	}
	if token != nil {
		a.client.SetAccessToken(string(token))
		common.WipeByteArray(token)
	}

	return cache.NewProfileCache(repo).Read(ctx)
}

// Logout drops the in-memory token and wipes all locally stored data.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.getMetadataRepo(a.db).Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
