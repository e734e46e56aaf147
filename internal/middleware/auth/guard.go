// Package auth holds the route guards. Authorization failures surface as
// 403 responses; handlers never see an unauthenticated request.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pawelapps/ecommerce/internal/apperror"
	"github.com/pawelapps/ecommerce/internal/service"
)

type Guard struct {
	Tokens *service.TokenService
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// RequireLogin authenticates the request from the access cookie, rotating an
// expired access token through the refresh cookie the way a session would.
// Anonymous and invalid requests are forbidden.
func (g *Guard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.authenticate(c); err != nil {
			return apperror.ToHTTP(err)
		}
		return next(c)
	}
}

// AdminOnly additionally requires the admin role.
func (g *Guard) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.authenticate(c); err != nil {
			return apperror.ToHTTP(err)
		}
		if PrincipalRole(c) != "admin" {
			return apperror.ToHTTP(apperror.Forbidden("admin role required"))
		}
		return next(c)
	}
}

func (g *Guard) authenticate(c echo.Context) error {
	asCookie, err := c.Cookie("accessToken")
	if err == nil && asCookie.Value != "" {
		claims, parseErr := g.Tokens.ParseAccess(asCookie.Value)
		if parseErr == nil {
			setPrincipal(c, claims)
			return nil
		}
		if !errors.Is(parseErr, jwt.ErrTokenExpired) {
			return apperror.Forbidden("invalid token")
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil || rfCookie.Value == "" {
		return apperror.Forbidden("authentication required")
	}

	ctx := c.Request().Context()
	newAccess, newRefresh, claims, err := g.Tokens.RotateToken(ctx, rfCookie.Value)
	if err != nil {
		return apperror.Forbidden("invalid token")
	}

	c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(15*time.Minute)))
	c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(7*24*time.Hour)))
	setPrincipal(c, claims)
	return nil
}

func setPrincipal(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("userID", uint(sub))
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

func PrincipalID(c echo.Context) uint {
	if v, ok := c.Get("userID").(uint); ok {
		return v
	}
	return 0
}

func PrincipalEmail(c echo.Context) string {
	if v, ok := c.Get("email").(string); ok {
		return v
	}
	return ""
}

func PrincipalRole(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}

// RequireOwner short-circuits with 403 unless the principal owns the resource
// or is an admin.
func RequireOwner(c echo.Context, ownerEmail string) error {
	if PrincipalRole(c) == "admin" {
		return nil
	}
	if PrincipalEmail(c) != ownerEmail {
		return apperror.Forbidden("not the resource owner")
	}
	return nil
}
