package security

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"session-guard/internal/session/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"golang.org/x/crypto/hkdf"
)

const (
	derivedKeySize = 32
	keyInfo        = "session-guard cookie key"
)

var (
	ErrKeyMaterialMissing = errors.New("cookie key material is missing")
	ErrKeyInvalid         = errors.New("cookie encryption key must be base64 of 16, 24 or 32 bytes")
)

// CookieCipher owns the AES-GCM key used by Fiber's encryptcookie middleware.
// Cookies reaching the session extractor have already been opened by it.
type CookieCipher struct {
	key    string
	except []string
}

// NewCookieCipher resolves the cookie key from cfg. An explicit
// CookieEncryptionKey wins; otherwise the key is derived from CookieSecret.
func NewCookieCipher(cfg *config.Config) (*CookieCipher, error) {
	var (
		key string
		err error
	)

	switch {
	case cfg.CookieEncryptionKey != "":
		key, err = checkKey(cfg.CookieEncryptionKey)
	case cfg.CookieSecret != "":
		key, err = DeriveKey(cfg.CookieSecret)
	default:
		err = ErrKeyMaterialMissing
	}
	if err != nil {
		return nil, err
	}

	except := make([]string, len(cfg.CookieExcept))
	copy(except, cfg.CookieExcept)

	return &CookieCipher{
		key:    key,
		except: except,
	}, nil
}

// DeriveKey stretches secret into a base64 encoded 256-bit key with HKDF-SHA256.
func DeriveKey(secret string) (string, error) {
	if secret == "" {
		return "", ErrKeyMaterialMissing
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	key := make([]byte, derivedKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return "", fmt.Errorf("derive cookie key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(key), nil
}

func checkKey(key string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyInvalid, err)
	}
	switch len(raw) {
	case 16, 24, 32:
		return key, nil
	default:
		return "", ErrKeyInvalid
	}
}

// Key returns the base64 encoded key.
func (c *CookieCipher) Key() string {
	return c.key
}

// Middleware decrypts incoming cookies in place and encrypts outgoing ones.
// Cookies that fail to decrypt are blanked, which the extractor treats as empty.
func (c *CookieCipher) Middleware() fiber.Handler {
	return encryptcookie.New(encryptcookie.Config{
		Key:    c.key,
		Except: c.except,
	})
}

// Seal encrypts value the same way the middleware does for outgoing cookies.
func (c *CookieCipher) Seal(value string) (string, error) {
	return encryptcookie.EncryptCookie(value, c.key)
}

// Open decrypts a value produced by Seal.
func (c *CookieCipher) Open(value string) (string, error) {
	return encryptcookie.DecryptCookie(value, c.key)
}
