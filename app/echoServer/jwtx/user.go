// Package jwtx reads the authenticated user from an echo context.
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	jwtutil "bookrental/util/jwt"
)

// ContextKey is where the auth middleware stores verified claims.
const ContextKey = "user"

func claims(c echo.Context) (jwt.MapClaims, error) {
	switch v := c.Get(ContextKey).(type) {
	case jwt.MapClaims:
		return v, nil
	case *jwt.Token:
		if mc, ok := v.Claims.(jwt.MapClaims); ok {
			return mc, nil
		}
		return nil, errors.New("invalid jwt claims")
	}
	return nil, errors.New("no jwt token in context")
}

func UserIDFromContext(c echo.Context) (int64, error) {
	mc, err := claims(c)
	if err != nil {
		return 0, err
	}
	return jwtutil.UserID(mc)
}
