package encryption

import (
	"errors"
	"fmt"
)

// ErrDecryption is returned when the ciphertext is corrupt, the key is
// wrong, or the payload was never encrypted. No partial plaintext is ever
// returned.
var ErrDecryption = errors.New("decryption failed")

// Encryptor encrypts and decrypts document payloads with a derived key.
type Encryptor interface {
	Encrypt(plaintext []byte, key Key) ([]byte, error)
	Decrypt(ciphertext []byte, key Key) ([]byte, error)
}

// NewEncryptor creates an Encryptor for the configured scheme.
func NewEncryptor(kind string) (Encryptor, error) {
	switch kind {
	case "aes256gcm", "":
		return NewAESGCM(), nil
	case "nop":
		return NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", kind)
	}
}
