package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simplon-hub/code-hub/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	user := &domain.User{
		ID:        "u1",
		Pseudo:    "marie",
		Matricule: "MAT-7",
		Role:      domain.RoleStudent,
	}

	token, expiresAt, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "marie", claims.Pseudo)
	require.Equal(t, "MAT-7", claims.Matricule)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestTokenRoleNormalizedAtIssueTime(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// legacy admin account without an explicit role value
	user := &domain.User{ID: "u2", Matricule: "AD-1"}

	token, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(&domain.User{ID: "u3"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	require.Error(t, err)
}
