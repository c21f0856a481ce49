package secrets

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef") // 32 bytes

func writeEncryptedToken(t *testing.T, key []byte, token string) string {
	t.Helper()

	ciphertext, err := EncryptToken(key, token)
	if err != nil {
		t.Fatalf("EncryptToken() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "encrypted_token")
	if err := os.WriteFile(path, ciphertext, 0600); err != nil {
		t.Fatalf("writing ciphertext: %v", err)
	}
	return path
}

func TestFileTokenSource_RoundTrip(t *testing.T) {
	path := writeEncryptedToken(t, testKey, "st-token-abc123")

	source, err := NewFileTokenSource(path, base64.StdEncoding.EncodeToString(testKey))
	if err != nil {
		t.Fatalf("NewFileTokenSource() error = %v", err)
	}

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "st-token-abc123" {
		t.Errorf("Token() = %q, want decrypted plaintext", token)
	}
}

func TestNewFileTokenSource_KeyValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "not base64", key: "!!!not-base64!!!"},
		{name: "wrong length", key: base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileTokenSource("/tmp/token", tt.key); err == nil {
				t.Error("NewFileTokenSource() expected error, got nil")
			}
		})
	}
}

func TestFileTokenSource_Failures(t *testing.T) {
	encodedKey := base64.StdEncoding.EncodeToString(testKey)

	t.Run("missing file", func(t *testing.T) {
		source, err := NewFileTokenSource(filepath.Join(t.TempDir(), "absent"), encodedKey)
		if err != nil {
			t.Fatalf("NewFileTokenSource() error = %v", err)
		}

		_, err = source.Token(context.Background())
		if !errors.Is(err, ErrToken) {
			t.Errorf("Token() error = %v, want ErrToken", err)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		path := writeEncryptedToken(t, testKey, "st-token")

		otherKey := []byte("fedcba9876543210fedcba9876543210")
		source, err := NewFileTokenSource(path, base64.StdEncoding.EncodeToString(otherKey))
		if err != nil {
			t.Fatalf("NewFileTokenSource() error = %v", err)
		}

		_, err = source.Token(context.Background())
		if !errors.Is(err, ErrToken) {
			t.Errorf("Token() error = %v, want ErrToken", err)
		}
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "encrypted_token")
		if err := os.WriteFile(path, []byte{0x01, 0x02}, 0600); err != nil {
			t.Fatalf("writing ciphertext: %v", err)
		}

		source, err := NewFileTokenSource(path, encodedKey)
		if err != nil {
			t.Fatalf("NewFileTokenSource() error = %v", err)
		}

		_, err = source.Token(context.Background())
		if !errors.Is(err, ErrToken) {
			t.Errorf("Token() error = %v, want ErrToken", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeEncryptedToken(t, testKey, "st-token")
		source, err := NewFileTokenSource(path, encodedKey)
		if err != nil {
			t.Fatalf("NewFileTokenSource() error = %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = source.Token(ctx)
		if !errors.Is(err, ErrToken) {
			t.Errorf("Token() error = %v, want ErrToken", err)
		}
	})
}
