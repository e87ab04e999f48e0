package testutil

import (
	"testing"

	"session-guard/internal/session/adapter/security"
	"session-guard/internal/session/config"
	"session-guard/internal/session/domain/model"
)

// TestSecret is a cookie secret long enough to pass config validation
const TestSecret = "test-secret-key-32-characters-long-12345"

// SessionFixture provides test data for Session model
type SessionFixture struct{}

// NewSessionFixture creates a new SessionFixture instance
func NewSessionFixture() *SessionFixture {
	return &SessionFixture{}
}

// ValidSession returns the canonical well-formed session
func (f *SessionFixture) ValidSession() *model.Session {
	return &model.Session{
		ID:       42,
		Email:    "a@b.com",
		AuthKey:  "tok123",
		IssuedAt: 1700000000,
	}
}

// SessionForUser returns a session for a specific user id and email
func (f *SessionFixture) SessionForUser(id int32, email string) *model.Session {
	return &model.Session{
		ID:       id,
		Email:    email,
		AuthKey:  "auth-key-" + email,
		IssuedAt: 1700000000,
	}
}

// Payload encodes sess into a cookie payload, failing the test on error
func (f *SessionFixture) Payload(t testing.TB, sess *model.Session) string {
	t.Helper()
	payload, err := model.Encode(sess)
	if err != nil {
		t.Fatalf("encode session: %v", err)
	}
	return payload
}

// TestConfig returns a valid session config using TestSecret
func TestConfig() *config.Config {
	return &config.Config{
		CookieName:   config.DefaultCookieName,
		CookieSecret: TestSecret,
		CookieExcept: []string{"csrf_"},
		APIPrefix:    "/api/v1",
		LogLevel:     "debug",
		LogFormat:    "text",
		LogBackend:   "logrus",
	}
}

// CookieSealer encrypts cookie values the way the server's cookie middleware expects
type CookieSealer struct {
	cipher *security.CookieCipher
}

// NewCookieSealer creates a sealer for cfg's key material
func NewCookieSealer(t testing.TB, cfg *config.Config) *CookieSealer {
	t.Helper()
	cipher, err := security.NewCookieCipher(cfg)
	if err != nil {
		t.Fatalf("create cookie cipher: %v", err)
	}
	return &CookieSealer{cipher: cipher}
}

// Header returns a Cookie header value carrying name=<sealed value>
func (s *CookieSealer) Header(t testing.TB, name, value string) string {
	t.Helper()
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		t.Fatalf("seal cookie: %v", err)
	}
	return name + "=" + sealed
}

// Malformed session payloads, each of which must be rejected
var MalformedPayloads = map[string]string{
	"empty":             ``,
	"not json":          `rocket`,
	"array":             `[42,"a@b.com","tok123",1700000000]`,
	"missing id":        `{"email":"a@b.com","auth_key":"tok123","issued_at":1700000000}`,
	"missing email":     `{"id":42,"auth_key":"tok123","issued_at":1700000000}`,
	"missing auth_key":  `{"id":42,"email":"a@b.com","issued_at":1700000000}`,
	"missing issued_at": `{"id":42,"email":"a@b.com","auth_key":"tok123"}`,
	"id not a number":   `{"id":"not-a-number","email":"a@b.com","auth_key":"x","issued_at":1}`,
	"issued_at string":  `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":"1"}`,
	"duplicate id":      `{"id":"x","email":"a@b.com","auth_key":"x","issued_at":1,"id":42}`,
	"duplicate issued":  `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":"1","issued_at":1}`,
	"invalid utf-8":     "{\"id\":1,\"email\":\"a\xffb\",\"auth_key\":\"x\",\"issued_at\":1}",
}
