package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/domain"
	"github.com/nfrund/friends/internal/session"
	"github.com/nfrund/friends/internal/view"
)

// Authenticator is the part of the API client the auth glue calls.
type Authenticator interface {
	ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// ViewerForgetter drops per-viewer state on logout.
type ViewerForgetter interface {
	Forget(viewer string)
}

// AuthHandler handles the login, registration and logout forms. Every
// outcome is reported as a flash message on the home page.
type AuthHandler struct {
	auth    Authenticator
	viewers ViewerForgetter
}

// NewAuthHandler creates a new AuthHandler. viewers may be nil.
func NewAuthHandler(auth Authenticator, viewers ViewerForgetter) *AuthHandler {
	return &AuthHandler{auth: auth, viewers: viewers}
}

// LoginPost exchanges the submitted credentials for a token pair and keeps
// it in the session.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	t := view.Localizer(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed login form")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, t.T("login.missing"))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	pair, err := h.auth.ObtainToken(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Failed login attempt", "username", req.Username, "status", domain.StatusOf(err), "detail", failureDetail(err), "error", err)
		view.SetFlashError(c, loginFailure(t.T, err))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := session.Store(c, pair); err != nil {
		return err
	}
	view.SetFlashSuccess(c, t.T("login.success"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPost forwards the registration form, avatar included, to the API.
// Registration does not log the visitor in.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	t := view.Localizer(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed registration form")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		slog.Debug("Rejected registration form", "username", req.Username, "error", err)
		view.SetFlashError(c, t.T("register.invalid"))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var avatar *domain.Upload
	if fh, err := c.FormFile("avatar"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		avatar = &domain.Upload{Filename: fh.Filename, Content: f}
	}

	if err := h.auth.Register(c.Request().Context(), req.Registration(avatar)); err != nil {
		slog.Warn("Registration failed", "username", req.Username, "error", err)
		if errors.Is(err, domain.ErrNetworkFailure) {
			view.SetFlashError(c, t.T("register.network"))
		} else {
			view.SetFlashError(c, t.T("register.failed", failureDetail(err)))
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}

	slog.Info("User registered", "username", req.Username)
	view.SetFlashSuccess(c, t.T("register.success"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout drops the tokens and the viewer's friends state.
func (h *AuthHandler) Logout(c echo.Context) error {
	if viewer := session.Viewer(c); viewer != "" && h.viewers != nil {
		h.viewers.Forget(viewer)
	}
	if err := session.Clear(c); err != nil {
		return err
	}
	view.SetFlashSuccess(c, view.Localizer(c).T("logout.success"))
	return c.Redirect(http.StatusSeeOther, "/")
}

func loginFailure(tr func(string, ...any) string, err error) string {
	if errors.Is(err, domain.ErrNetworkFailure) {
		return tr("login.network")
	}
	switch domain.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return tr("login.invalid")
	default:
		return tr("login.failed")
	}
}

// failureDetail is the server's message, or the status when it sent none.
func failureDetail(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Body != "" {
			return apiErr.Body
		}
		if apiErr.Status != 0 {
			return strconv.Itoa(apiErr.Status)
		}
	}
	return err.Error()
}
