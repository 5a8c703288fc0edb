// Package session reads and writes the bearer credential kept in the signed
// session cookie.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/domain"
)

// Name is the cookie session holding the tokens.
const Name = "friends-session"

// Fixed key names for the stored values.
const (
	KeyAccess  = "access"
	KeyRefresh = "refresh"
	KeyViewer  = "viewer"
)

// Credential returns the stored access token. ok is false when no non-empty
// token is present.
func Credential(c echo.Context) (token string, ok bool) {
	token = stringValue(c, KeyAccess)
	return token, token != ""
}

// Refresh returns the stored refresh token, if any.
func Refresh(c echo.Context) string {
	return stringValue(c, KeyRefresh)
}

// Store persists a freshly issued token pair and assigns a viewer id if
// the session has none yet.
func Store(c echo.Context, pair domain.TokenPair) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	sess.Values[KeyAccess] = pair.Access
	sess.Values[KeyRefresh] = pair.Refresh
	if id, _ := sess.Values[KeyViewer].(string); id == "" {
		sess.Values[KeyViewer] = uuid.NewString()
	}
	return save(c, sess)
}

// Clear drops both tokens. The viewer id is kept so the caller can still
// look it up while tearing down per-viewer state.
func Clear(c echo.Context) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	delete(sess.Values, KeyAccess)
	delete(sess.Values, KeyRefresh)
	return save(c, sess)
}

// ViewerID returns the identifier of the browser session, minting one on
// first use.
func ViewerID(c echo.Context) (string, error) {
	sess, err := session.Get(Name, c)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if id, ok := sess.Values[KeyViewer].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	sess.Values[KeyViewer] = id
	if err := save(c, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Viewer returns the viewer id without minting one.
func Viewer(c echo.Context) string {
	return stringValue(c, KeyViewer)
}

func stringValue(c echo.Context, key string) string {
	sess, err := session.Get(Name, c)
	if err != nil {
		return ""
	}
	v, _ := sess.Values[key].(string)
	return v
}

func save(c echo.Context, sess *sessions.Session) error {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
