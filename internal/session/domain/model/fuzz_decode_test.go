package model

import (
	"errors"
	"testing"
)

// FuzzDecode exercises the payload decoder with arbitrary inputs.
// Decode must never panic, and anything it accepts must survive a round trip.
func FuzzDecode(f *testing.F) {
	seed, err := Encode(&Session{ID: 42, Email: "a@b.com", AuthKey: "tok123", IssuedAt: 1700000000})
	if err == nil {
		f.Add(seed)
		f.Add(seed[:10])
		f.Add(seed[:len(seed)-1])
	}

	f.Add("")
	f.Add("{}")
	f.Add("null")
	f.Add(`{"id":"not-a-number","email":"a@b.com","auth_key":"x","issued_at":1}`)
	f.Add(`{"id":42,"email":"a@b.com","auth_key":"x","issued_at":1,"extra":0}`)

	f.Fuzz(func(t *testing.T, payload string) {
		s, err := Decode(payload)
		if err != nil {
			if s != nil {
				t.Fatalf("decode returned both a session and an error")
			}
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("decode error does not wrap ErrMalformedPayload: %v", err)
			}
			return
		}

		encoded, err := Encode(s)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		again, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode of re-encoded payload failed: %v", err)
		}
		if *again != *s {
			t.Fatalf("round trip mismatch: %+v != %+v", *again, *s)
		}
	})
}
