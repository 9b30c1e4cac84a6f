// Copyright (c) 2026 MADR contributors. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoklosowski/madr/internal/platform/sec"
)

type fakeClock struct{ current time.Time }

func (c *fakeClock) Now() time.Time { return c.current }

func newService(t *testing.T, clock *fakeClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret", "HS256", time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

/*
TestToken_RoundTrip verifies a freshly issued token yields its subject.
*/
func TestToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.IssueToken("ana@madr.dev")
	require.NoError(t, err)

	subject, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@madr.dev", subject)
}

/*
TestToken_Expired ensures a token is rejected once its TTL has elapsed.
*/
func TestToken_Expired(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.IssueToken("ana@madr.dev")
	require.NoError(t, err)

	clock.current = clock.current.Add(time.Hour + time.Second)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestToken_Rejections covers tampered, foreign and subject-less tokens.
*/
func TestToken_Rejections(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newService(t, clock)

	valid, err := service.IssueToken("ana@madr.dev")
	require.NoError(t, err)

	other, err := sec.NewTokenService("another-secret", "HS256", time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.IssueToken("ana@madr.dev")
	require.NoError(t, err)

	noSubject, err := service.IssueToken("")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ana@madr.dev",
		ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid[:len(valid)-2] + strings.Repeat("x", 2)},
		{"foreign_secret", foreign},
		{"empty_subject", noSubject},
		{"alg_none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestNewTokenService_Invalid ensures construction fails on bad parameters.
*/
func TestNewTokenService_Invalid(t *testing.T) {
	_, err := sec.NewTokenService("", "HS256", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "RS256", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "HS256", 0)
	assert.Error(t, err)
}

/*
TestPasswordHash verifies hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("segredo")
	require.NoError(t, err)

	assert.NotEqual(t, "segredo", hash)
	assert.True(t, sec.CheckPasswordHash("segredo", hash))
	assert.False(t, sec.CheckPasswordHash("outro", hash))
	assert.False(t, sec.CheckPasswordHash("segredox", hash))

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	again, err := sec.HashPassword("segredo")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "each hash uses a fresh salt")
	assert.True(t, sec.CheckPasswordHash("segredo", again))
}

/*
TestPasswordHash_LongPassword accepts passwords of any length and still detects a changed suffix.
*/
func TestPasswordHash_LongPassword(t *testing.T) {
	long := strings.Repeat("a", 200)

	hash, err := sec.HashPassword(long)
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash(long, hash))
	assert.False(t, sec.CheckPasswordHash(long+"x", hash))
	assert.False(t, sec.CheckPasswordHash(long[:72], hash))
}

/*
TestCheckPasswordHash_Malformed never matches a hash it cannot decode.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []string{
		"",
		"segredo",
		"$2a$10$abcdefghijklmnopqrstuuOv8oDmI5c1cBCk4pUB0j3PXTj2wL7xW",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$abc",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
	}

	for _, encoded := range tests {
		assert.False(t, sec.CheckPasswordHash("segredo", encoded), encoded)
	}
}

/*
TestPrincipal_Owns checks the ownership helper.
*/
func TestPrincipal_Owns(t *testing.T) {
	principal := &sec.Principal{UserID: 3}
	assert.True(t, principal.Owns(3))
	assert.False(t, principal.Owns(4))

	var anonymous *sec.Principal
	assert.False(t, anonymous.Owns(3))
}
