package encryption

var _ Encryptor = (*Nop)(nil)

// Nop passes payloads through unchanged. Used in tests.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Encrypt(plaintext []byte, key Key) ([]byte, error) {
	return plaintext, nil
}

func (Nop) Decrypt(ciphertext []byte, key Key) ([]byte, error) {
	return ciphertext, nil
}
