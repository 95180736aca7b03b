// Package crypto provides the AES-GCM codec applied to client PII columns.
// Encryption happens explicitly at the repository boundary; nothing else in
// the codebase sees ciphertext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Codec encrypts and decrypts individual field values. Ciphertexts are
// stored as base64(nonce || sealed).
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to build GCM: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// NewCodecFromEnv reads ENCRYPTION_KEY (hex or raw 32 bytes). A missing key
// falls back to a development-only default.
func NewCodecFromEnv() (*Codec, error) {
	raw := os.Getenv("ENCRYPTION_KEY")
	if raw == "" {
		raw = "dev-only-32-byte-encryption-key!"
	}
	key := []byte(raw)
	if decoded, err := hex.DecodeString(raw); err == nil && len(decoded) == 32 {
		key = decoded
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be 32 bytes, got %d", len(key))
	}
	return NewCodec(key)
}

// Encrypt seals a plaintext field value.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
func (c *Codec) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}

// Digest returns a deterministic fingerprint of a value, used for unique
// indexes over encrypted columns (client email).
func Digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
