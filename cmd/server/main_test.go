package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/votekeeper/internal/server/handlers"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "--jwt-secret", "s3cret", "--subject", "officer")
	require.NoError(t, err)

	claims, err := handlers.ValidateAdminToken(handlers.JWTConfig{Secret: []byte("s3cret")}, strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "officer", claims.Subject)
}

func TestTokenCommand_SecretFromEnv(t *testing.T) {
	t.Setenv(jwtSecretEnv, "from-env")

	out, err := run(t, "token")
	require.NoError(t, err)

	_, err = handlers.ValidateAdminToken(handlers.JWTConfig{Secret: []byte("from-env")}, strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestTokenCommand_MissingSecret(t *testing.T) {
	t.Setenv(jwtSecretEnv, "")

	_, err := run(t, "token")
	assert.ErrorContains(t, err, jwtSecretEnv)
}

func TestServeCommand_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "serve", "--jwt-secret", "x", "--log-level", "loud", "--db", ":memory:")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "VoteKeeper Server")
	assert.Contains(t, out, "Version:    dev")
}
