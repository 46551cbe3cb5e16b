// Package services holds the server-side business logic of the profile store.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/cryptox"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/audit"
	"github.com/dmitrijs2005/profilekeeper/internal/server/auth"
	"github.com/dmitrijs2005/profilekeeper/internal/server/cache"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	"github.com/dmitrijs2005/profilekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/repomanager"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	audit       audit.Recorder
	metrics     *metrics.Metrics
	log         logging.Logger

	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	lookupTTL                   time.Duration
	hashParams                  cryptox.Params
	now                         func() time.Time
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	c cache.Cache, rec audit.Recorder, mx *metrics.Metrics, log logging.Logger) *ProfileService {
	return &ProfileService{
		db:                          db,
		repomanager:                 m,
		cache:                       c,
		audit:                       rec,
		metrics:                     mx,
		log:                         log.With("module", "profile_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		lookupTTL:                   cfg.LookupCacheTTL,
		hashParams:                  cryptox.DefaultParams,
		now:                         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

func (s *ProfileService) Register(ctx context.Context, email, password string, fields map[string]string) error {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return validationError("email %q is not valid", email)
	}
	if password == "" {
		return validationError("password is required")
	}
	for name := range fields {
		if !models.Updatable(name) || name == models.FieldPassword {
			return validationError("unknown field %q", name)
		}
	}

	hash, err := cryptox.HashPassword(s.hashParams, []byte(password))
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	p := &models.Profile{Email: email, PasswordHash: hash}
	p.Apply(fields)

	if _, err := s.repomanager.Profiles(s.db).Create(ctx, p); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("error creating profile: %w", err)
	}

	s.log.Info(ctx, "profile registered", "email", email)
	return nil
}

// Login verifies the credentials and returns an access token together with
// the public profile. Unknown accounts and wrong passwords are indistinguishable.
func (s *ProfileService) Login(ctx context.Context, email, password string) (string, map[string]string, error) {
	email = normalizeEmail(email)

	p, err := s.repomanager.Profiles(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("error loading profile: %w", err)
	}

	ok, err := cryptox.VerifyPassword([]byte(password), p.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash unusable", "email", email, "error", err)
		return "", nil, common.ErrorInternal
	}
	if !ok {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(p.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, fmt.Errorf("error generating access token: %w", err)
	}

	return token, p.Public(), nil
}

// Lookup returns the public profile for email, served from the lookup cache
// when possible. Cache failures fall through to the database. Only the owner
// of the profile may look it up.
func (s *ProfileService) Lookup(ctx context.Context, caller, email string) (map[string]string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, validationError("email is required")
	}
	if err := authorize(caller, email); err != nil {
		return nil, err
	}

	if b, err := s.cache.Get(ctx, email); err == nil {
		var pub map[string]string
		if err := json.Unmarshal(b, &pub); err == nil {
			s.metrics.CacheHit()
			return pub, nil
		}
		s.log.Warn(ctx, "dropping undecodable cache entry", "email", email)
		_ = s.cache.Delete(ctx, email)
	} else if !errors.Is(err, cache.ErrNotFound) {
		s.log.Warn(ctx, "lookup cache unavailable", "email", email, "error", err)
	}
	s.metrics.CacheMiss()

	p, err := s.repomanager.Profiles(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	pub := p.Public()
	if b, err := json.Marshal(pub); err == nil {
		if err := s.cache.Set(ctx, email, b, s.lookupTTL); err != nil {
			s.log.Warn(ctx, "lookup cache write failed", "email", email, "error", err)
		}
	}
	return pub, nil
}

// Update applies a partial patch to the profile keyed by email. caller is the
// subject of the request's access token, or empty for anonymous requests.
// Only the owner of the profile may change it.
func (s *ProfileService) Update(ctx context.Context, caller, email string, fields map[string]string) (err error) {
	defer func() { s.metrics.ObserveUpdate(err) }()

	email = normalizeEmail(email)
	if email == "" {
		return validationError("email is required")
	}
	if len(fields) == 0 {
		return validationError("nothing to update")
	}
	for name := range fields {
		if name == models.FieldEmail {
			return validationError("email cannot be changed")
		}
		if !models.Updatable(name) {
			return validationError("unknown field %q", name)
		}
	}

	if err := authorize(caller, email); err != nil {
		return err
	}

	columns := make(map[string]string, len(fields))
	for name, v := range fields {
		if name != models.FieldPassword {
			columns[name] = v
			continue
		}
		if v == "" {
			return validationError("password cannot be empty")
		}
		hash, err := cryptox.HashPassword(s.hashParams, []byte(v))
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		columns[models.ColumnPasswordHash] = hash
	}

	if err := s.repomanager.Profiles(s.db).Update(ctx, email, columns); err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
			return err
		}
		return fmt.Errorf("error updating profile: %w", err)
	}

	if err := s.cache.Delete(ctx, email); err != nil {
		s.log.Warn(ctx, "lookup cache invalidation failed", "email", email, "error", err)
	}

	names := slices.Sorted(maps.Keys(fields))
	if err := s.audit.Record(ctx, audit.NewEvent(email, names, s.now())); err != nil {
		s.metrics.AuditError()
		s.log.Error(ctx, "audit record failed", "email", email, "error", err)
	}

	s.log.Info(ctx, "profile updated", "email", email, "fields", names)
	return nil
}

// authorize lets a request through only when its token subject is email.
func authorize(caller, email string) error {
	switch {
	case caller == "":
		return common.ErrorUnauthorized
	case normalizeEmail(caller) != email:
		return common.ErrorForbidden
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *ProfileService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
