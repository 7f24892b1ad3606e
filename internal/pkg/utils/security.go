package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	"zahara-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
)

// ParseJWTEmail extracts the authenticated requester's email from an
// HS256 bearer token issued by the platform's auth service.
func ParseJWTEmail(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.ErrTokenInvalidOrExpired(nil)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if email, ok := claims["email"].(string); ok && email != "" {
			return email, nil
		}
	}

	return "", exceptions.ErrTokenInvalidOrExpired(nil)
}

// VerifyWebhookSignature checks the hex-encoded HMAC-SHA512 signature
// the gateway attaches to asynchronous confirmation calls.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
