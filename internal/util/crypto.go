package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ----------------- AES-256-GCM, used for the local blob at rest -----------------

const (
	saltSize   = 16
	kdfRounds  = 100_000
	aesKeySize = 32
)

// deriveKey stretches the configured passphrase into a 32 byte AES key.
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, kdfRounds, aesKeySize, sha256.New)
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}

// EncryptAES encrypts with AES-256-GCM and returns salt+nonce+ciphertext.
func EncryptAES(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	aesgcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	out := append(salt, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// DecryptAES reverses EncryptAES. data must be salt+nonce+ciphertext.
func DecryptAES(passphrase string, data []byte) ([]byte, error) {
	if len(data) < saltSize {
		return nil, fmt.Errorf("cipher too short")
	}
	salt, rest := data[:saltSize], data[saltSize:]

	aesgcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	ns := aesgcm.NonceSize()
	if len(rest) < ns {
		return nil, fmt.Errorf("cipher too short")
	}
	nonce, ciphertext := rest[:ns], rest[ns:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}
