package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	tok, err := svc.Issue("alice")
	require.NoError(t, err)

	sub, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	tok, err := svc.IssueWithTTL("alice", 0)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue("alice")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyTamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)
	tok, err := svc.Issue("alice")
	require.NoError(t, err)

	// Flip one character inside the payload segment.  The claims would decode
	// differently, so the signature check must fail rather than returning a
	// different subject.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	sub, err := svc.Verify(tampered)
	assert.Error(t, err)
	assert.Empty(t, sub)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", 0)
	tok, err := svc.Issue("alice")
	require.NoError(t, err)

	sub, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}
