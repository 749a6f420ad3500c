package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

var _ Encryptor = (*AESGCM)(nil)

// AESGCM implements Encryptor with AES-256-GCM. The random nonce is
// prepended to the ciphertext; the GCM tag authenticates the payload so a
// wrong key or flipped bit fails as ErrDecryption instead of yielding
// garbage plaintext.
type AESGCM struct{}

func NewAESGCM() AESGCM {
	return AESGCM{}
}

func (AESGCM) Encrypt(plaintext []byte, key Key) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (AESGCM) Decrypt(ciphertext []byte, key Key) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	return plaintext, nil
}

func newAEAD(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return cipher.NewGCM(block)
}
