package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/config"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()

	hash, err := auth.HashPassword("secret1", 4)
	require.NoError(t, err)
	users.users["u1"] = &domain.User{
		ID:           "u1",
		Matricule:    "MAT-7",
		Email:        "marie@simplon.co",
		Pseudo:       "marie",
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		Actif:        true,
	}

	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}
	return NewAuthService(cfg, users, events.NewInMemoryDispatcher()), users
}

func TestLoginByEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), " Marie@Simplon.CO ", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u1", result.User.ID)
	require.Equal(t, "/dashboard", result.Redirect)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "marie@simplon.co", "wrong")
	requireDomainCode(t, err, "UNAUTHORIZED")
	require.Equal(t, "Identifiants incorrects", err.Error())

	_, err = svc.Login(ctx, "nobody@simplon.co", "secret1")
	requireDomainCode(t, err, "UNAUTHORIZED")

	_, err = svc.Login(ctx, "", "")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users := newAuthFixture(t)
	users.users["u1"].Actif = false

	_, err := svc.Login(context.Background(), "marie@simplon.co", "secret1")
	requireDomainCode(t, err, "FORBIDDEN")
	require.Equal(t, "Compte désactivé", err.Error())
}

func TestLoginAdminRedirect(t *testing.T) {
	svc, users := newAuthFixture(t)

	hash, err := auth.HashPassword("secret1", 4)
	require.NoError(t, err)
	users.users["u2"] = &domain.User{
		ID:           "u2",
		Matricule:    "AD-1",
		Email:        "admin@simplon.co",
		Pseudo:       "chief",
		PasswordHash: hash,
		Actif:        true,
	}

	result, err := svc.Login(context.Background(), "admin@simplon.co", "secret1")
	require.NoError(t, err)
	require.Equal(t, "/admin", result.Redirect)
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	pseudo := "marie2"
	password := "newsecret"
	updated, err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Pseudo: &pseudo, Password: &password})
	require.NoError(t, err)
	require.Equal(t, "marie2", updated.Pseudo)
	require.NoError(t, auth.ComparePassword(users.users["u1"].PasswordHash, "newsecret"))

	short := "ab"
	_, err = svc.UpdateProfile(ctx, "u1", ProfileUpdate{Pseudo: &short})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.UpdateProfile(ctx, "missing", ProfileUpdate{})
	requireDomainCode(t, err, "NOT_FOUND")
}
