package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func TestAuthService_LoginStoresSession(t *testing.T) {
	api := newMockJobAPI()
	api.session = "sess-123"
	store := memory.NewConfigStore()
	svc := NewAuthService(api, store)

	require.NoError(t, svc.Login(context.Background(), " admin ", "pw"))

	assert.Equal(t, []string{"admin"}, api.logins)
	assert.Equal(t, "sess-123", svc.Session())
	assert.Equal(t, "sess-123", store.GetString(KeyAuthSession))
}

func TestAuthService_LoginErrors(t *testing.T) {
	api := newMockJobAPI()
	store := memory.NewConfigStore()
	svc := NewAuthService(api, store)

	assert.ErrorIs(t, svc.Login(context.Background(), "", "pw"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Login(context.Background(), "admin", ""), domain.ErrInvalidInput)
	assert.Empty(t, api.logins)

	api.loginErr = domain.ErrInvalidCredentials
	err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, svc.Session())
}

func TestAuthService_Logout(t *testing.T) {
	api := newMockJobAPI()
	store := memory.NewConfigStore()
	_ = store.Set(KeyAuthSession, "sess-123")
	svc := NewAuthService(api, store)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, api.logouts)
	assert.Empty(t, svc.Session())
}

func TestAuthService_LogoutForgetsExpiredSession(t *testing.T) {
	api := newMockJobAPI()
	api.logoutErr = domain.ErrUnauthorized
	store := memory.NewConfigStore()
	_ = store.Set(KeyAuthSession, "expired")
	svc := NewAuthService(api, store)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Empty(t, svc.Session())

	api.logoutErr = errors.New("connection refused")
	_ = store.Set(KeyAuthSession, "again")
	err := svc.Logout(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, svc.Session(), "session is forgotten locally even when the backend fails")
}

func TestAuthService_WhoAmI(t *testing.T) {
	api := newMockJobAPI()
	api.user = &domain.User{Username: "admin"}
	svc := NewAuthService(api, memory.NewConfigStore())

	u, err := svc.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	api.meErr = domain.ErrUnauthorized
	_, err = svc.WhoAmI(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
