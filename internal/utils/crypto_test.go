package utils

import (
	"testing"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)
	require.True(t, CheckPassword("s3cret-pass", hash))
	require.False(t, CheckPassword("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := models.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "fleetops",
		Audience:  "fleetops_staff",
		Expiry:    time.Hour,
	}
	token, err := GenerateJWT(models.JWT{ID: 5, Name: "Asha", Username: "asha@example.com", Role: "admin"}, cfg)
	require.NoError(t, err)

	claims, err := ParseJWT(token, cfg)
	require.NoError(t, err)
	require.Equal(t, 5, claims.ID)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "asha@example.com", claims.Username)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	cfg := models.JWTConfig{SecretKey: "right-secret", Expiry: time.Hour}
	token, err := GenerateJWT(models.JWT{ID: 1, Role: "hr"}, cfg)
	require.NoError(t, err)

	_, err = ParseJWT(token, models.JWTConfig{SecretKey: "wrong-secret"})
	require.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	cfg := models.JWTConfig{SecretKey: "test-secret", Expiry: -time.Minute}
	token, err := GenerateJWT(models.JWT{ID: 2, Role: "manager"}, cfg)
	require.NoError(t, err)

	_, err = ParseJWT(token, cfg)
	require.Error(t, err)
}
