package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/session"
	"github.com/nfrund/friends/internal/view"
	"github.com/nfrund/friends/web/src/templates/layouts"
	"github.com/nfrund/friends/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet renders the landing page with the "find friends" trigger. The
// header reflects whether the session holds a credential.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	_, loggedIn := session.Credential(c)
	t := view.Localizer(c)

	page := layouts.Base(t, "", loggedIn, view.GetFlashData(c), pages.Home(t))

	// The name parameter is ignored by the universal renderer; the component is passed as data.
	return c.Render(http.StatusOK, "", page)
}
