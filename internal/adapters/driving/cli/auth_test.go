package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func TestAuthLogin_PasswordStdin(t *testing.T) {
	var gotUser, gotPass string
	auth := &MockAuthService{LoginFunc: func(_ context.Context, u, p string) error {
		gotUser, gotPass = u, p
		return nil
	}}

	out, err := executeCommand(t, Services{Auth: auth}, "s3cret pass\n",
		"auth", "login", "-u", "admin", "--password-stdin")

	require.NoError(t, err)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "s3cret pass", gotPass)
	assert.NotContains(t, out, "Password:")
	assert.Contains(t, out, "Logged in as admin")
}

func TestAuthLogin_Prompts(t *testing.T) {
	var gotUser, gotPass string
	auth := &MockAuthService{LoginFunc: func(_ context.Context, u, p string) error {
		gotUser, gotPass = u, p
		return nil
	}}

	out, err := executeCommand(t, Services{Auth: auth}, " admin \nhunter2\n", "auth", "login")

	require.NoError(t, err)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "hunter2", gotPass)
	assert.Contains(t, out, "Username: ")
	assert.Contains(t, out, "Password: ")
}

func TestAuthLogin_EmptyPassword(t *testing.T) {
	_, err := executeCommand(t, Services{Auth: &MockAuthService{}}, "", "auth", "login", "-u", "admin")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthLogin_BadCredentials(t *testing.T) {
	auth := &MockAuthService{LoginFunc: func(context.Context, string, string) error {
		return domain.ErrInvalidCredentials
	}}

	_, err := executeCommand(t, Services{Auth: auth}, "x\n", "auth", "login", "-u", "admin", "--password-stdin")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogout(t *testing.T) {
	auth := &MockAuthService{}

	out, err := executeCommand(t, Services{Auth: auth}, "", "auth", "logout")

	require.NoError(t, err)
	assert.True(t, auth.LoggedOut)
	assert.Contains(t, out, "Logged out.")
}

func TestAuthWhoAmI(t *testing.T) {
	auth := &MockAuthService{User: &domain.User{Username: "admin"}}

	out, err := executeCommand(t, Services{Auth: auth}, "", "auth", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "admin")
}

func TestAuthWhoAmI_NotLoggedIn(t *testing.T) {
	auth := &MockAuthService{WhoAmIErr: errors.Join(domain.ErrUnauthorized, domain.ErrFetchFailed)}

	_, err := executeCommand(t, Services{Auth: auth}, "", "auth", "whoami")

	assert.EqualError(t, err, "not logged in; run 'fieldlens auth login'")
}
