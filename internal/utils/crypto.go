package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against its bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT issues a signed HS256 token for the given claims
func GenerateJWT(user models.JWT, cfg models.JWTConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
		"iss":      cfg.Issuer,
		"aud":      cfg.Audience,
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseJWT validates a signed token and returns its claims
func ParseJWT(tokenStr string, cfg models.JWTConfig) (*models.JWT, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	var user models.JWT
	if v, ok := claims["id"].(float64); ok {
		user.ID = int(v)
	}
	if v, ok := claims["name"].(string); ok {
		user.Name = v
	}
	if v, ok := claims["username"].(string); ok {
		user.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		user.Role = v
	}
	if v, ok := claims["exp"].(float64); ok {
		user.ExpiresAt = int64(v)
	}
	if user.ExpiresAt > 0 && time.Now().Unix() > user.ExpiresAt {
		return nil, errors.New("token expired")
	}
	return &user, nil
}
