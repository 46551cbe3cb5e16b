package client

import (
	"context"
)

// Client is the remote API the CLI talks to.
type Client interface {
	Close() error
	Register(ctx context.Context, email, password string, fields map[string]string) error
	Login(ctx context.Context, email, password string) (token string, profile map[string]string, err error)
	SetAccessToken(token string)
	Ping(ctx context.Context) error
	Lookup(ctx context.Context, email string) (map[string]string, error)
	Update(ctx context.Context, email string, fields map[string]string) error
}
