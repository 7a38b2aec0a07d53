package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, expiresAt, err := issuer.Issue("u1", "TENANT")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", subject)
}

func TestIssuer_RejectsForeignSecret(t *testing.T) {
	signed, _, err := NewIssuer("secret", time.Hour).Issue("u1", "TENANT")
	require.NoError(t, err)

	_, err = NewIssuer("other", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err := issuer.Issue("u1", "TENANT")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
