package friends

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/session"
	"github.com/nfrund/friends/internal/view"
	g "maragu.dev/gomponents"
)

// Handler serves the htmx fragments of the friends region.
type Handler struct {
	viewers *Viewers
}

// NewHandler creates a handler backed by the given controllers.
func NewHandler(viewers *Viewers) *Handler {
	return &Handler{viewers: viewers}
}

// ActivateGet answers the "find friends" button with the whole region:
// search bar plus the unfiltered listing.
func (h *Handler) ActivateGet(c echo.Context) error {
	return h.run(c, true, func(ctx context.Context, ctrl *Controller, cred string) (ViewState, error) {
		return ctrl.Activate(ctx, cred)
	})
}

// SearchGet answers the search form with the content of the list container.
func (h *Handler) SearchGet(c echo.Context) error {
	query := c.QueryParam("search")
	return h.run(c, false, func(ctx context.Context, ctrl *Controller, cred string) (ViewState, error) {
		return ctrl.Search(ctx, cred, query)
	})
}

// UserGet answers a click on a card with the user's profile.
func (h *Handler) UserGet(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return h.run(c, false, func(ctx context.Context, ctrl *Controller, cred string) (ViewState, error) {
		return ctrl.Open(ctx, cred, id)
	})
}

// BackGet returns from a profile to the listing of the last query.
func (h *Handler) BackGet(c echo.Context) error {
	return h.run(c, false, func(ctx context.Context, ctrl *Controller, cred string) (ViewState, error) {
		return ctrl.Back(ctx, cred)
	})
}

type action func(ctx context.Context, ctrl *Controller, credential string) (ViewState, error)

// run performs act on the viewer's controller and renders the committed
// state. A superseded response is answered with 204 so htmx leaves the
// newer content in place.
//
// Without a credential the login prompt is rendered directly and no
// controller is created for the request.
func (h *Handler) run(c echo.Context, panel bool, act action) error {
	cred, ok := session.Credential(c)
	if !ok {
		return h.render(c, panel, unauthorizedState())
	}

	viewer, err := session.ViewerID(c)
	if err != nil {
		return err
	}

	state, err := act(c.Request().Context(), h.viewers.Get(viewer), cred)
	if errors.Is(err, ErrStale) {
		slog.DebugContext(c.Request().Context(), "Dropping superseded fragment", "viewer", viewer, "path", c.Path())
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return err
	}
	return h.render(c, panel, state)
}

func (h *Handler) render(c echo.Context, panel bool, state ViewState) error {
	t := view.Localizer(c)
	var node g.Node
	if panel {
		node = RenderPanel(t, state)
	} else {
		node = RenderState(t, state)
	}
	return c.Render(http.StatusOK, "", node)
}
