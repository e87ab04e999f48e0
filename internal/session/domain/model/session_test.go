package model_test

import (
	"math"
	"testing"

	"session-guard/internal/session/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_WellFormedPayload(t *testing.T) {
	s, err := model.Decode(`{"id":42,"email":"a@b.com","auth_key":"tok123","issued_at":1700000000}`)

	require.NoError(t, err)
	assert.Equal(t, model.Session{
		ID:       42,
		Email:    "a@b.com",
		AuthKey:  "tok123",
		IssuedAt: 1700000000,
	}, *s)
}

func TestDecode_KeyOrderAndWhitespaceIrrelevant(t *testing.T) {
	s, err := model.Decode(" {\n \"issued_at\": 1, \"auth_key\": \"k\", \"email\": \"e\", \"id\": 7 }\n")

	require.NoError(t, err)
	assert.Equal(t, model.Session{ID: 7, Email: "e", AuthKey: "k", IssuedAt: 1}, *s)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []model.Session{
		{ID: 42, Email: "a@b.com", AuthKey: "tok123", IssuedAt: 1700000000},
		{ID: 0, Email: "", AuthKey: "", IssuedAt: 0},
		{ID: math.MaxInt32, Email: "ünïcødé@example.org", AuthKey: "<script>&\"", IssuedAt: math.MaxInt64},
		{ID: math.MinInt32, Email: "x", AuthKey: "y", IssuedAt: -1},
	}

	for _, want := range cases {
		want := want
		payload, err := model.Encode(&want)
		require.NoError(t, err)

		got, err := model.Decode(payload)
		require.NoError(t, err, "payload %s", payload)
		assert.Equal(t, want, *got)
	}
}

func TestEncode_Compact(t *testing.T) {
	payload, err := model.Encode(&model.Session{ID: 42, Email: "a@b.com", AuthKey: "tok123", IssuedAt: 1700000000})

	require.NoError(t, err)
	assert.Equal(t, `{"id":42,"email":"a@b.com","auth_key":"tok123","issued_at":1700000000}`, payload)
}

func TestEncode_Nil(t *testing.T) {
	_, err := model.Encode(nil)
	assert.Error(t, err)
}

func TestDecode_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{"empty", ``},
		{"whitespace", `   `},
		{"not json", `rocket`},
		{"json null", `null`},
		{"array", `[42,"a@b.com","tok123",1700000000]`},
		{"string", `"session"`},
		{"empty object", `{}`},
		{"missing id", `{"email":"a@b.com","auth_key":"tok123","issued_at":1700000000}`},
		{"missing email", `{"id":42,"auth_key":"tok123","issued_at":1700000000}`},
		{"missing auth_key", `{"id":42,"email":"a@b.com","issued_at":1700000000}`},
		{"missing issued_at", `{"id":42,"email":"a@b.com","auth_key":"tok123"}`},
		{"null id", `{"id":null,"email":"a@b.com","auth_key":"tok123","issued_at":1}`},
		{"null email", `{"id":42,"email":null,"auth_key":"tok123","issued_at":1}`},
		{"id not a number", `{"id":"not-a-number","email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"id numeric string", `{"id":"42","email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"id float", `{"id":4.2,"email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"id exponent", `{"id":1e3,"email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"id overflows int32", `{"id":2147483648,"email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"id bool", `{"id":true,"email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"issued_at string", `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":"1700000000"}`},
		{"issued_at float", `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":1.5}`},
		{"email number", `{"id":42,"email":7,"auth_key":"x","issued_at":1}`},
		{"auth_key object", `{"id":42,"email":"a@b.com","auth_key":{},"issued_at":1}`},
		{"unknown field", `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":1,"admin":true}`},
		{"wrong case key", `{"ID":42,"email":"a@b.com","auth_key":"x","issued_at":1}`},
		{"legacy time_stamp key", `{"id":42,"email":"a@b.com","auth_key":"x","time_stamp":1}`},
		{"trailing data", `{"id":42,"email":"a@b.com","auth_key":"x","issued_at":1}{}`},
		{"truncated", `{"id":42,"email":"a@b.com","auth_key":"x","issued_`},
		{"duplicate id hides non-integer", `{"id":"x","email":"a","auth_key":"k","issued_at":1,"id":42}`},
		{"duplicate issued_at", `{"id":42,"email":"a","auth_key":"k","issued_at":"soon","issued_at":1}`},
		{"duplicate identical email", `{"id":42,"email":"a","auth_key":"k","issued_at":1,"email":"a"}`},
		{"duplicate via escape", `{"id":42,"email":"a","auth_key":"k","issued_at":1,"i\u0064":42}`},
		{"invalid utf-8 in email", "{\"id\":1,\"email\":\"a\xffb\",\"auth_key\":\"k\",\"issued_at\":1}"},
		{"invalid utf-8 in auth_key", "{\"id\":1,\"email\":\"a\",\"auth_key\":\"\xc3\x28\",\"issued_at\":1}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := model.Decode(tc.payload)

			assert.Nil(t, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrMalformedPayload)
		})
	}
}

func TestSession_StructuralEquality(t *testing.T) {
	a := model.Session{ID: 1, Email: "e", AuthKey: "k", IssuedAt: 2}
	b := model.Session{ID: 1, Email: "e", AuthKey: "k", IssuedAt: 2}
	assert.True(t, a == b)
}
