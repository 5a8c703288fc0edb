package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/view"
	"github.com/stretchr/testify/assert"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	// Create a new session store for the test.
	store := sessions.NewCookieStore([]byte(testSessionSecret))
	// Create a middleware function that will be used to wrap our test handler.
	sessionMiddleware := session.Middleware(store)

	// Run a dummy handler through the middleware so the session is
	// initialized in the context.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("Set and Get Success Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "Регистрация успешна!")

		flashes := view.GetFlashData(c)

		assert.NotEmpty(t, flashes.Success)
		assert.Equal(t, "Регистрация успешна!", flashes.Success[0])
		assert.Empty(t, flashes.Error)

		// Get flashes again to ensure they are cleared
		flashesAfterRead := view.GetFlashData(c)
		assert.True(t, flashesAfterRead.Empty(), "Flashes should be cleared after being read")
	})

	t.Run("Set and Get Error Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashError(c, "Неверные учетные данные")

		flashes := view.GetFlashData(c)

		assert.NotEmpty(t, flashes.Error)
		assert.Equal(t, "Неверные учетные данные", flashes.Error[0])
		assert.Empty(t, flashes.Success)
	})

	t.Run("GetFlashData with no flashes set", func(t *testing.T) {
		c, _ := setupTestContext()

		flashes := view.GetFlashData(c)
		assert.True(t, flashes.Empty())
	})
}
