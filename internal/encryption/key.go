package encryption

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	kdfIterations = 100000
	keyLength     = 32
)

// ErrKeyDerivation is returned when the secret or salt is missing or
// malformed. There is no fallback to a weak key.
var ErrKeyDerivation = errors.New("key derivation failed")

// Key is a derived symmetric key.
type Key []byte

// DeriveKey derives a 32 byte key from secret and salt using
// PBKDF2-HMAC-SHA256 with 100000 iterations. The derivation is
// deterministic: the same secret and salt always yield the same key, so
// encryption and decryption on different invocations agree.
func DeriveKey(secret, salt []byte) (Key, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrKeyDerivation)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrKeyDerivation)
	}
	return pbkdf2.Key(secret, salt, kdfIterations, keyLength, sha256.New), nil
}

// DeriveKeyBase64 derives a key from a secret string and a base64 encoded
// salt, the form both are carried in configuration.
func DeriveKeyBase64(secret, saltB64 string) (Key, error) {
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed salt: %v", ErrKeyDerivation, err)
	}
	return DeriveKey([]byte(secret), salt)
}

// Encode returns the base64 form of the key for storage or transport.
func (k Key) Encode() string {
	return base64.StdEncoding.EncodeToString(k)
}

// DecodeKey parses a base64 encoded key produced by Encode.
func DecodeKey(encoded string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed key: %v", ErrKeyDerivation, err)
	}
	if len(raw) != keyLength {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyDerivation, keyLength, len(raw))
	}
	return Key(raw), nil
}
