// Package identity correlates a browser client with the upstream
// loyalty API: a session id for the program-catalog cache and a
// long-lived traveler id. Neither is authentication.
package identity

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookie  = "sid"
	travelerCookie = "travelerId"

	travelerCookieAge = 365 * 24 * time.Hour
)

// TravelerFactory registers a new traveler with the loyalty API.
type TravelerFactory interface {
	CreateTraveler(ctx context.Context) (string, error)
}

// Provider resolves the stable per-client traveler id.
type Provider interface {
	TravelerID(c echo.Context) (string, error)
}

// CookieProvider keeps the traveler id in a one-year cookie, creating
// the traveler upstream on first use.
type CookieProvider struct {
	factory TravelerFactory
}

func NewCookieProvider(factory TravelerFactory) *CookieProvider {
	return &CookieProvider{factory: factory}
}

func (p *CookieProvider) TravelerID(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(travelerCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	id, err := p.factory.CreateTraveler(c.Request().Context())
	if err != nil {
		return "", err
	}

	c.SetCookie(&http.Cookie{
		Name:    travelerCookie,
		Value:   id,
		Path:    "/",
		Expires: time.Now().Add(travelerCookieAge),
	})

	return id, nil
}

// SessionID returns the caller's session id, minting one in a cookie
// when absent.
func SessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:  sessionCookie,
		Value: id,
		Path:  "/",
	})

	return id
}
