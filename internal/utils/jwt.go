package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/vault-guard/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by ParseTokenClaims when the token is not a
// JWT. Such tokens are still valid bearer credentials; they just carry no
// claims the client can read.
var ErrOpaqueToken = errors.New("token is not a JWT")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account the token is issued for
//   - IssuedAt  (iat): the given now
//   - ExpiresAt (exp): now plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("vaulttest", "x@example.com", time.Hour, "secret", time.Now())
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string, now time.Time) (string, error) {
	if issuer == "" || subject == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWTToken verifies the signature, issuer and expiry of tokenString
// and returns its subject.
//
// Example usage:
//
//	subject, err := utils.ValidateJWTToken(rawToken, "secret", "vaulttest")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateJWTToken(tokenString, tokenSignKey, tokenIssuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject error")
	}

	return subject, nil
}

// ParseBearerToken extracts the credential from an "Authorization: Bearer
// <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseTokenClaims reads the "sub" and "exp" claims of a JWT bearer token
// without verifying its signature. The client does not hold the signing
// key; the claims are used only for display and for logging out before the
// backend starts rejecting the token.
//
// Returns ErrOpaqueToken for tokens that are not JWTs.
func ParseTokenClaims(tokenString string) (models.TokenClaims, error) {
	if strings.Count(tokenString, ".") != 2 {
		return models.TokenClaims{}, ErrOpaqueToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return models.TokenClaims{}, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.TokenClaims{}, errors.New("invalid token claims")
	}

	var out models.TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
