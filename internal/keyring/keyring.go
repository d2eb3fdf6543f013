// Package keyring seals provider API keys before they are written to
// persistent storage.
package keyring

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	// minSecretLength matches the minimum JWT secret length.
	minSecretLength = 32
)

var hkdfInfo = []byte("blogsmith provider api keys v1")

var (
	// ErrWeakSecret is returned when the sealing secret is too short.
	ErrWeakSecret = errors.New("keyring secret must be at least 32 characters")

	// ErrCorrupt is returned when a sealed value cannot be opened.
	ErrCorrupt = errors.New("sealed value is corrupt or was sealed with another secret")
)

// Sealer encrypts and authenticates short secrets with a key derived from a
// server secret.
type Sealer struct {
	key [keySize]byte
}

// New derives a Sealer from secret.
func New(secret string) (*Sealer, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	s := &Sealer{}
	r := hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo)
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}
	return s, nil
}

// Seal encrypts plaintext and returns it as URL-safe base64 with the nonce
// prepended.
func (s *Sealer) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

// Mask hides all but the first and last four characters of key.
func Mask(key string) string {
	key = strings.TrimSpace(key)
	n := utf8.RuneCountInString(key)
	if n == 0 {
		return ""
	}
	if n <= 8 {
		return strings.Repeat("*", n)
	}
	r := []rune(key)
	return string(r[:4]) + strings.Repeat("*", n-8) + string(r[n-4:])
}
