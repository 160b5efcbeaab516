package session

import "errors"

var (
	// ErrNoStore indicates a Session was constructed without a backing store.
	ErrNoStore = errors.New("session: no store configured")

	// ErrInvalidKeySize is returned when a file store encryption key is not 32 bytes.
	ErrInvalidKeySize = errors.New("session: encryption key must be 32 bytes")

	// ErrEncryptionFailed indicates the persisted state could not be encrypted.
	ErrEncryptionFailed = errors.New("session: encryption failed")

	// ErrDecryptionFailed indicates the persisted state could not be decrypted.
	ErrDecryptionFailed = errors.New("session: decryption failed")

	// ErrFailedToPersist indicates the store rejected a write.
	ErrFailedToPersist = errors.New("session: failed to persist state")
)
