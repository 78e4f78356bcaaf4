package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
)

// Auth validates the Bearer token and places the subject claim on the echo
// context under presentation.UID.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(presentation.AuthKey)

			token, err := parseToken(authHeader, secret)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return ctx.String(http.StatusUnauthorized, "token has no subject")
			}

			ctx.Set(presentation.UID, sub)

			return next(ctx)
		}
	}
}

func parseToken(authHeader string, secret []byte) (*jwt.Token, error) {
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("missing Bearer prefix")
	}

	raw := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %s", err.Error())
	}

	return token, nil
}
