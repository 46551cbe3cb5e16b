// Package cryptox hashes and verifies account passwords.
//
// Hashes are argon2id in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=1$<salt b64>$<key b64>
//
// so the parameters travel with the hash and can be raised without
// invalidating stored rows.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost settings.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLen     int
	KeyLen      uint32
}

var DefaultParams = Params{Memory: 64 * 1024, Time: 3, Parallelism: 1, SaltLen: 16, KeyLen: 32}

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrMalformedHash = errors.New("malformed password hash")
)

// HashPassword derives an argon2id key for plain with a fresh random salt.
func HashPassword(p Params, plain []byte) (string, error) {
	if len(plain) == 0 {
		return "", ErrEmptyPassword
	}

	salt := common.GenerateRandByteArray(p.SaltLen)
	key := argon2.IDKey(plain, salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether plain matches the PHC hash. A malformed hash
// is an error; a wrong password is (false, nil).
func VerifyPassword(plain []byte, phc string) (bool, error) {
	parts := strings.Split(phc, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	stored, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(stored) == 0 {
		return false, ErrMalformedHash
	}

	candidate := argon2.IDKey(plain, salt, p.Time, p.Memory, p.Parallelism, uint32(len(stored)))
	return subtle.ConstantTimeCompare(candidate, stored) == 1, nil
}
