package credentials_test

import (
	"strings"
	"testing"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	verifier, err := credentials.Hash("secret123")
	require.NoError(t, err)

	ok, err := credentials.Verify("secret123", verifier)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	verifier, err := credentials.Hash("secret123")
	require.NoError(t, err)

	ok, err := credentials.Verify("secret124", verifier)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashProducesDistinctSalts(t *testing.T) {
	first, err := credentials.Hash("secret123")
	require.NoError(t, err)
	second, err := credentials.Hash("secret123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	ok, err := credentials.Verify("secret123", first)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = credentials.Verify("secret123", second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifierShape(t *testing.T) {
	verifier, err := credentials.Hash("secret123")
	require.NoError(t, err)

	parts := strings.Split(verifier, ":")
	require.Len(t, parts, 2)
	require.Len(t, parts[0], 32) // 16-byte salt, hex encoded
	require.Len(t, parts[1], 64) // 32-byte derived key, hex encoded
}

func TestVerifyRejectsCorruptVerifier(t *testing.T) {
	corrupt := []string{
		"",
		"nodelimiter",
		"a:b:c",
		"zz-not-hex:00ff",
		"00ff:zz-not-hex",
	}
	for _, verifier := range corrupt {
		ok, err := credentials.Verify("secret123", verifier)
		require.ErrorIs(t, err, credentials.ErrCorruptVerifier, "verifier %q", verifier)
		require.False(t, ok)
	}
}

func TestNewCredential(t *testing.T) {
	credential, err := credentials.New("alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, credential.ID)
	require.Equal(t, "alice", credential.Username)
	require.NotContains(t, credential.Verifier, "secret123")

	ok, err := credentials.Verify("secret123", credential.Verifier)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewCredentialRequiresFields(t *testing.T) {
	_, err := credentials.New("", "secret123")
	require.ErrorIs(t, err, credentials.ErrMissingUsername)

	_, err = credentials.New("alice", "")
	require.ErrorIs(t, err, credentials.ErrMissingPassword)

	_, err = credentials.New("   ", "secret123")
	require.ErrorIs(t, err, credentials.ErrMissingUsername)
}
