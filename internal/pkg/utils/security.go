package utils

import (
	"errors"
	"strings"

	"mrchemist-admin-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
)

// ParseAdminJWT verifies an HMAC signed admin token and returns its subject.
func ParseAdminJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New(constvars.ErrDevAuthTokenInvalid)
	}

	for _, key := range []string{"sub", "id", "_id"} {
		if subject, ok := claims[key].(string); ok && subject != "" {
			return subject, nil
		}
	}
	return "", errors.New(constvars.ErrDevAuthTokenInvalid)
}

func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, constvars.AuthorizationBearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))
	return token, token != ""
}
