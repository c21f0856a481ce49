package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// TokenSource supplies the bearer token for the remote control API.
//
// Implementations make a single attempt per call: no retry, no caching
// across invocations. Every failure mode (unreadable file, bad key,
// corrupt ciphertext) collapses into ErrToken - callers cannot and
// should not distinguish causes.
type TokenSource interface {
	// Token returns the plaintext API token.
	Token(ctx context.Context) (string, error)
}

// FileTokenSource decrypts a locally stored ciphertext file with AES-GCM.
//
// The file layout is nonce || sealed ciphertext, as produced by
// EncryptToken. The key is supplied out of band (VOXGATE_TOKEN_KEY) so
// the ciphertext at rest is useless without the deployment environment.
type FileTokenSource struct {
	path string
	key  []byte
}

// NewFileTokenSource creates a token source for the given ciphertext file.
//
// Parameters:
//   - path: Filesystem path to the encrypted token
//   - base64Key: Base64-encoded AES key (16, 24, or 32 bytes decoded)
//
// Returns:
//   - *FileTokenSource: Ready token source
//   - error: If the key does not decode to a valid AES key size
func NewFileTokenSource(path, base64Key string) (*FileTokenSource, error) {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("decoding token key: %w", err)
	}

	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("token key must be 16, 24, or 32 bytes, got %d", len(key))
	}

	return &FileTokenSource{path: path, key: key}, nil
}

// Token reads and decrypts the stored API token.
//
// Parameters:
//   - ctx: Checked for cancellation before any work
//
// Returns:
//   - string: The plaintext token
//   - error: ErrToken-wrapped on any read or decrypt failure
func (s *FileTokenSource) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrToken, err)
	}

	ciphertext, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrToken, s.path, err)
	}

	gcm, err := newGCM(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToken, err)
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext shorter than nonce", ErrToken)
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: decrypting token: %w", ErrToken, err)
	}

	return string(plaintext), nil
}

// EncryptToken seals a plaintext token for storage at rest.
//
// Used when provisioning a gateway: encrypt the SmartThings token once,
// ship the ciphertext file with the deployment, and supply the key via
// the environment.
//
// Parameters:
//   - key: AES key (16, 24, or 32 bytes)
//   - plaintext: The token to encrypt
//
// Returns:
//   - []byte: nonce || sealed ciphertext, suitable for FileTokenSource
//   - error: If the key is invalid or nonce generation fails
func EncryptToken(key []byte, plaintext string) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// newGCM constructs an AES-GCM AEAD for the given key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}
