package echoapi

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core/access"
)

const (
	contextRoleKey = "role"
	tokenAudience  = "console"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	Role access.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewClaims returns claims for role, valid from now for ttl.
func NewClaims(role access.Role, issuer string, ttl time.Duration, now time.Time) *Claims {
	return &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(role),
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(secret string, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// ParseToken verifies tokenString and returns its claims. now drives the expiry check.
func ParseToken(secret, tokenString string, now func() time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, err = access.ParseRole(string(claims.Role)); err != nil {
		return nil, err
	}
	return claims, nil
}

// authMiddleware puts the role carried by the bearer token on the context.
func authMiddleware(secret string, now func() time.Time) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return errMissingToken
			}
			claims, err := ParseToken(secret, strings.TrimSpace(raw), now)
			if err != nil {
				return errInvalidToken.WithInternal(err)
			}
			ctx.Set(contextRoleKey, claims.Role)
			return next(ctx)
		}
	}
}

func getContextRole(ctx echo.Context) (access.Role, error) {
	if role, ok := ctx.Get(contextRoleKey).(access.Role); ok {
		return role, nil
	}
	return "", errUnauthorized
}
