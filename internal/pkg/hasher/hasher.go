// Package hasher derives password digests.
//
// The legacy scheme derives the salt from the password itself together with a
// process-wide secret, so equal passwords produce equal digests. It is kept so
// that digests written by earlier deployments still verify. New deployments can
// switch to bcrypt with SchemeBcrypt; Verify understands both formats.
package hasher

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

type Scheme string

const (
	SchemeLegacy Scheme = "legacy"
	SchemeBcrypt Scheme = "bcrypt"
)

const derivedSaltLen = 16

var (
	ErrEmptySalt     = errors.New("hasher: secret salt is empty")
	ErrInvalidRounds = errors.New("hasher: salt rounds must be positive")
	ErrUnknownScheme = errors.New("hasher: unknown scheme")
)

// Hasher implements ports.PasswordHasher.
type Hasher struct {
	salt       []byte
	rounds     int
	scheme     Scheme
	bcryptCost int
}

// New returns a Hasher writing digests with scheme. salt and rounds are
// always required because legacy digests may be present in the store.
func New(salt string, rounds int, scheme Scheme) (*Hasher, error) {
	if salt == "" {
		return nil, ErrEmptySalt
	}
	if rounds < 1 {
		return nil, ErrInvalidRounds
	}
	switch scheme {
	case "":
		scheme = SchemeLegacy
	case SchemeLegacy, SchemeBcrypt:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return &Hasher{
		salt:       []byte(salt),
		rounds:     rounds,
		scheme:     scheme,
		bcryptCost: bcrypt.DefaultCost,
	}, nil
}

// Hash returns the digest of password using the configured scheme.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		out, err := bcrypt.GenerateFromPassword(prehash(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(out), nil
	}
	return h.legacy(password), nil
}

// Verify reports whether password produces digest. Legacy digests are
// compared case-insensitively.
func (h *Hasher) Verify(password, digest string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), prehash(password)) == nil
	}
	got := strings.ToLower(h.legacy(password))
	want := strings.ToLower(digest)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func (h *Hasher) legacy(password string) string {
	derived := pbkdf2.Key([]byte(password), h.salt, h.rounds, derivedSaltLen, sha1.New)
	salt := base64.StdEncoding.EncodeToString(derived)
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// prehash reduces password to 44 bytes so bcrypt's 72-byte input limit
// never truncates or rejects it.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
