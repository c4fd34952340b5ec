package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"examhub/backend/config"
)

// GenerateTokenPair issues an access and a refresh token for a user. The
// access token carries the role so guards can check it without a DB hit.
func GenerateTokenPair(userID, role string, cfg *config.Config) (accessToken, refreshToken string, err error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  now.Add(cfg.JWTExpiresIn).Unix(),
		"iat":  now.Unix(),
	})
	accessToken, err = access.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(cfg.JWTRefreshExpires).Unix(),
		"iat": now.Unix(),
	})
	refreshToken, err = refresh.SignedString([]byte(cfg.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseToken verifies a token against the given secret and returns the user
// id claim.
func ParseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}
	return userID, nil
}

// ExtractBearerToken pulls the token out of the Authorization header,
// tolerating both raw tokens and the Bearer prefix.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
