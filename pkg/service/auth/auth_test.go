package auth_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/domain"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newService(t *testing.T) *authsvc.Service {
	t.Helper()
	cfg := config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return authsvc.New(memrepo.New(), cfg, slog.Default())
}

func TestLoginRoundtrip(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Admin", "admin@example.com", "correct horse", domain.RoleAdmin)
	require.NoError(t, err)

	token, loggedIn, err := svc.Login(ctx, "admin@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, u.ID, loggedIn.ID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	id, err := svc.CurrentUserID(parsed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Admin", "admin@example.com", "correct horse", domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "admin@example.com", "battery staple")
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Admin", "admin@example.com", "correct horse", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "admin@example.com", "other password", domain.RoleMember)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
