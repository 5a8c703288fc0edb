package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/domain"
	"github.com/nfrund/friends/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// run executes fn inside the session middleware for a request carrying the
// given cookies and returns the recorder.
func run(t *testing.T, cookies []*http.Cookie, fn func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	handler := func(c echo.Context) error { fn(c); return nil }
	require.NoError(t, echosession.Middleware(store)(handler)(e.NewContext(req, rec)))
	return rec
}

func TestCredential(t *testing.T) {
	t.Run("absent before login", func(t *testing.T) {
		run(t, nil, func(c echo.Context) {
			token, ok := session.Credential(c)
			assert.False(t, ok)
			assert.Empty(t, token)
		})
	})

	t.Run("stored pair survives the round trip", func(t *testing.T) {
		rec := run(t, nil, func(c echo.Context) {
			require.NoError(t, session.Store(c, domain.TokenPair{Access: "a-token", Refresh: "r-token"}))
		})

		run(t, rec.Result().Cookies(), func(c echo.Context) {
			token, ok := session.Credential(c)
			assert.True(t, ok)
			assert.Equal(t, "a-token", token)
			assert.Equal(t, "r-token", session.Refresh(c))
		})
	})

	t.Run("clear removes tokens", func(t *testing.T) {
		rec := run(t, nil, func(c echo.Context) {
			require.NoError(t, session.Store(c, domain.TokenPair{Access: "a-token", Refresh: "r-token"}))
		})
		rec = run(t, rec.Result().Cookies(), func(c echo.Context) {
			require.NoError(t, session.Clear(c))
		})

		run(t, rec.Result().Cookies(), func(c echo.Context) {
			_, ok := session.Credential(c)
			assert.False(t, ok)
			assert.Empty(t, session.Refresh(c))
		})
	})

	t.Run("empty access token counts as absent", func(t *testing.T) {
		run(t, nil, func(c echo.Context) {
			require.NoError(t, session.Store(c, domain.TokenPair{}))
			_, ok := session.Credential(c)
			assert.False(t, ok)
		})
	})
}

func TestViewerID(t *testing.T) {
	var first string
	rec := run(t, nil, func(c echo.Context) {
		id, err := session.ViewerID(c)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		first = id

		again, err := session.ViewerID(c)
		require.NoError(t, err)
		assert.Equal(t, id, again, "id is stable within a request")
	})

	run(t, rec.Result().Cookies(), func(c echo.Context) {
		id, err := session.ViewerID(c)
		require.NoError(t, err)
		assert.Equal(t, first, id, "id is stable across requests")
	})
}

func TestViewer(t *testing.T) {
	run(t, nil, func(c echo.Context) {
		assert.Empty(t, session.Viewer(c), "lookup does not mint")
	})

	rec := run(t, nil, func(c echo.Context) {
		require.NoError(t, session.Store(c, domain.TokenPair{Access: "a-token"}))
	})
	var viewer string
	rec = run(t, rec.Result().Cookies(), func(c echo.Context) {
		viewer = session.Viewer(c)
		require.NotEmpty(t, viewer, "login assigns a viewer")
		require.NoError(t, session.Clear(c))
	})
	run(t, rec.Result().Cookies(), func(c echo.Context) {
		assert.Equal(t, viewer, session.Viewer(c), "logout keeps the viewer")
	})
}
