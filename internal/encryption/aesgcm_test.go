package encryption

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey(t *testing.T, secret string) Key {
	key, err := DeriveKey([]byte(secret), []byte("salt"))
	assert.NoError(t, err)
	return key
}

func TestAESGCM_RoundTrip(t *testing.T) {
	enc := NewAESGCM()
	key := testKey(t, "secret")

	plaintext := []byte("drawing revision payload")
	ciphertext, err := enc.Encrypt(plaintext, key)
	assert.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := enc.Decrypt(ciphertext, key)
	assert.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestAESGCM_NonceMakesCiphertextsDiffer(t *testing.T) {
	enc := NewAESGCM()
	key := testKey(t, "secret")

	c1, err := enc.Encrypt([]byte("payload"), key)
	assert.NoError(t, err)
	c2, err := enc.Encrypt([]byte("payload"), key)
	assert.NoError(t, err)

	assert.NotEqual(t, c1, c2)
}

func TestAESGCM_WrongKey(t *testing.T) {
	enc := NewAESGCM()

	ciphertext, err := enc.Encrypt([]byte("payload"), testKey(t, "secret"))
	assert.NoError(t, err)

	_, err = enc.Decrypt(ciphertext, testKey(t, "other"))
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestAESGCM_CorruptCiphertext(t *testing.T) {
	enc := NewAESGCM()
	key := testKey(t, "secret")

	ciphertext, err := enc.Encrypt([]byte("payload"), key)
	assert.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0xff
	_, err = enc.Decrypt(ciphertext, key)
	assert.ErrorIs(t, err, ErrDecryption)

	// too short to even hold a nonce
	_, err = enc.Decrypt([]byte("tiny"), key)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNop_RoundTrip(t *testing.T) {
	enc := NewNop()

	ciphertext, err := enc.Encrypt([]byte("payload"), nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), ciphertext)

	got, err := enc.Decrypt(ciphertext, nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestNewEncryptor(t *testing.T) {
	enc, err := NewEncryptor("")
	assert.NoError(t, err)
	assert.IsType(t, AESGCM{}, enc)

	enc, err = NewEncryptor("nop")
	assert.NoError(t, err)
	assert.IsType(t, Nop{}, enc)

	_, err = NewEncryptor("rot13")
	assert.Error(t, err)
}

func TestReplaceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.bin")

	assert.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	assert.NoError(t, ReplaceFile(path, []byte("new")))

	got, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	// no staging file left behind
	_, err = os.Stat(path + ".staged")
	assert.True(t, os.IsNotExist(err))
}
