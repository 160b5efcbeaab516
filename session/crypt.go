package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// keySize is the required length of a FileStore encryption key.
	keySize = 32 // 256 bits for AES-256

	// saltInfo provides domain separation for the derived key.
	saltInfo = "gallerykit-session-v1"
)

// deriveKey stretches the user-supplied key with HKDF-SHA256 so the raw key
// material is never used directly as the AES key.
func deriveKey(key []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, key, nil, []byte(saltInfo))

	derived := make([]byte, keySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return derived, nil
}

// encrypt seals data with AES-GCM. The ciphertext layout is nonce + sealed
// data + tag.
func encrypt(key, data []byte) ([]byte, error) {
	derived, err := deriveKey(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return aesGCM.Seal(nonce, nonce, data, nil), nil
}

// decrypt opens ciphertext produced by encrypt.
func decrypt(key, ciphertext []byte) ([]byte, error) {
	derived, err := deriveKey(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrDecryptionFailed
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
