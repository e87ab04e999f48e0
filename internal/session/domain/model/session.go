package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Payload keys. The cookie payload must contain exactly these four keys.
const (
	FieldID       = "id"
	FieldEmail    = "email"
	FieldAuthKey  = "auth_key"
	FieldIssuedAt = "issued_at"
)

var payloadFields = [...]string{FieldID, FieldEmail, FieldAuthKey, FieldIssuedAt}

// ErrMalformedPayload is returned by Decode for any payload that is not a
// well-formed session record.
var ErrMalformedPayload = errors.New("malformed session payload")

// Session is the login-time identity snapshot carried in the session cookie.
//
// A decoded Session only proves that a cookie of this shape was present and
// decodable. It says nothing about whether the session has been logged out or
// has expired; that check belongs to whoever consumes the record.
type Session struct {
	// ID is the user id as stored by the identity store.
	ID int32 `json:"id"`
	// Email is the user's email at the time the session was issued.
	Email string `json:"email"`
	// AuthKey is the random per-login token used elsewhere to invalidate sessions.
	AuthKey string `json:"auth_key"`
	// IssuedAt is the Unix time of login, in seconds.
	IssuedAt int64 `json:"issued_at"`
}

// Encode serializes s into the compact cookie payload.
func Encode(s *Session) (string, error) {
	if s == nil {
		return "", errors.New("session: cannot encode nil session")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("session: failed to marshal: %w", err)
	}
	return string(data), nil
}

// Decode parses a cookie payload into a Session.
//
// The payload must be a single JSON object with exactly the keys id, email,
// auth_key and issued_at, each appearing once. Missing, null, unknown,
// repeated or wrongly typed keys are rejected, as is invalid UTF-8. Every
// failure wraps ErrMalformedPayload.
func Decode(payload string) (*Session, error) {
	if payload == "" {
		return nil, malformed(errors.New("empty payload"))
	}
	if !utf8.ValidString(payload) {
		return nil, malformed(errors.New("invalid UTF-8"))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, malformed(err)
	}

	for _, name := range payloadFields {
		v, ok := raw[name]
		if !ok || isNull(v) {
			return nil, malformed(fmt.Errorf("missing field %q", name))
		}
	}
	if err := checkDuplicateKeys(payload); err != nil {
		return nil, malformed(err)
	}
	if len(raw) != len(payloadFields) {
		return nil, malformed(fmt.Errorf("unexpected field %q", unexpectedField(raw)))
	}

	s := &Session{}
	if err := decodeField(raw, FieldID, &s.ID); err != nil {
		return nil, err
	}
	if err := decodeField(raw, FieldEmail, &s.Email); err != nil {
		return nil, err
	}
	if err := decodeField(raw, FieldAuthKey, &s.AuthKey); err != nil {
		return nil, err
	}
	if err := decodeField(raw, FieldIssuedAt, &s.IssuedAt); err != nil {
		return nil, err
	}

	return s, nil
}

func decodeField(raw map[string]json.RawMessage, name string, dst interface{}) error {
	if err := json.Unmarshal(raw[name], dst); err != nil {
		return malformed(fmt.Errorf("field %q: %w", name, err))
	}
	return nil
}

// checkDuplicateKeys walks the top-level object of a payload that already
// unmarshalled into a map and reports the first key seen twice.
func checkDuplicateKeys(payload string) error {
	dec := json.NewDecoder(strings.NewReader(payload))
	if _, err := dec.Token(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(payloadFields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate field %q", key)
		}
		seen[key] = struct{}{}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func unexpectedField(raw map[string]json.RawMessage) string {
	known := make(map[string]struct{}, len(payloadFields))
	for _, name := range payloadFields {
		known[name] = struct{}{}
	}
	for name := range raw {
		if _, ok := known[name]; !ok {
			return name
		}
	}
	return ""
}

func malformed(cause error) error {
	return fmt.Errorf("%w: %v", ErrMalformedPayload, cause)
}
