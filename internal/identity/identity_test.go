package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFactory struct {
	id    string
	err   error
	calls int
}

func (f *stubFactory) CreateTraveler(ctx context.Context) (string, error) {
	f.calls++
	return f.id, f.err
}

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTravelerID_CreatesOnFirstUse(t *testing.T) {
	factory := &stubFactory{id: "t-123"}
	provider := NewCookieProvider(factory)

	c, rec := newContext()

	id, err := provider.TravelerID(c)
	require.NoError(t, err)
	assert.Equal(t, "t-123", id)
	assert.Equal(t, 1, factory.calls)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "travelerId", cookies[0].Name)
	assert.Equal(t, "t-123", cookies[0].Value)
	assert.False(t, cookies[0].Expires.IsZero())
}

func TestTravelerID_ReusesCookie(t *testing.T) {
	factory := &stubFactory{id: "t-999"}
	provider := NewCookieProvider(factory)

	c, _ := newContext(&http.Cookie{Name: "travelerId", Value: "t-123"})

	id, err := provider.TravelerID(c)
	require.NoError(t, err)
	assert.Equal(t, "t-123", id)
	assert.Zero(t, factory.calls)
}

func TestTravelerID_FactoryFailure(t *testing.T) {
	factory := &stubFactory{err: errors.New("upstream down")}
	provider := NewCookieProvider(factory)

	c, rec := newContext()

	_, err := provider.TravelerID(c)
	assert.Error(t, err)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionID_MintsAndReuses(t *testing.T) {
	c, rec := newContext()

	id := SessionID(c)
	assert.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	c, _ = newContext(&http.Cookie{Name: "sid", Value: "existing"})
	assert.Equal(t, "existing", SessionID(c))
}
