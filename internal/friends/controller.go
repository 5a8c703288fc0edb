package friends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nfrund/friends/internal/domain"
)

// ErrStale is returned when a response arrives after a newer request from
// the same viewer was issued. The response has been discarded.
var ErrStale = errors.New("response superseded by a newer request")

// errNoCredential stands in for a 401 when the session holds no token, so no
// request is sent at all.
var errNoCredential = &domain.APIError{Kind: domain.KindUnauthorized, Err: errors.New("no credential in session")}

// unauthorizedState is the login prompt shown when there is no credential.
func unauthorizedState() ViewState {
	return errorState(errNoCredential, MsgReauth)
}

// UserDirectory is the part of the API client the controller calls.
type UserDirectory interface {
	ListUsers(ctx context.Context, token, query string) ([]domain.UserSummary, error)
	GetUser(ctx context.Context, token string, id int) (*domain.UserDetail, error)
}

// Transition is reported after every committed state change.
type Transition struct {
	Viewer string
	From   Kind
	To     ViewState
}

// TransitionFunc receives committed transitions. It must not block.
type TransitionFunc func(Transition)

// Controller owns the friends region of one viewer. Calls may overlap; each
// takes a sequence number and only the most recently issued one may commit.
type Controller struct {
	viewer   string
	users    UserDirectory
	onChange TransitionFunc

	mu          sync.Mutex
	initialized bool
	issued      uint64
	state       ViewState
	lastQuery   string
}

// NewController creates the controller for a viewer. onChange may be nil.
func NewController(viewer string, users UserDirectory, onChange TransitionFunc) *Controller {
	return &Controller{
		viewer:   viewer,
		users:    users,
		onChange: onChange,
	}
}

// State returns the current view state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Initialized reports whether Activate has run at least once.
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Activate is the "find friends" trigger: it marks the region initialized
// and loads the unfiltered listing. Activating again reloads the listing.
func (c *Controller) Activate(ctx context.Context, credential string) (ViewState, error) {
	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()
	return c.fetchList(ctx, credential, "")
}

// Search replaces the listing with the results for query. A blank query
// lists everyone.
func (c *Controller) Search(ctx context.Context, credential, query string) (ViewState, error) {
	return c.fetchList(ctx, credential, strings.TrimSpace(query))
}

// Back returns from a profile to the listing of the last query.
func (c *Controller) Back(ctx context.Context, credential string) (ViewState, error) {
	c.mu.Lock()
	query := c.lastQuery
	c.mu.Unlock()
	return c.fetchList(ctx, credential, query)
}

// Open replaces the region with the profile of user id.
func (c *Controller) Open(ctx context.Context, credential string, id int) (ViewState, error) {
	seq := c.begin()
	if credential == "" {
		return c.commit(seq, errorState(errNoCredential, MsgDetailFailed))
	}

	user, err := c.users.GetUser(ctx, credential, id)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load user profile", "viewer", c.viewer, "user_id", id, "error", err)
		return c.commit(seq, errorState(err, MsgDetailFailed))
	}
	return c.commit(seq, detailState(user))
}

func (c *Controller) fetchList(ctx context.Context, credential, query string) (ViewState, error) {
	seq := c.begin()
	if credential == "" {
		return c.commit(seq, errorState(errNoCredential, MsgListFailed))
	}

	users, err := c.users.ListUsers(ctx, credential, query)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load users", "viewer", c.viewer, "query", query, "error", err)
		return c.commit(seq, errorState(err, MsgListFailed))
	}
	return c.commit(seq, listState(query, users))
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// commit installs next unless a newer request was issued after seq.
func (c *Controller) commit(seq uint64, next ViewState) (ViewState, error) {
	c.mu.Lock()
	if seq != c.issued {
		current, latest := c.state, c.issued
		c.mu.Unlock()
		slog.Debug("Discarding stale response", "viewer", c.viewer, "seq", seq, "latest", latest)
		return current, fmt.Errorf("request %d: %w", seq, ErrStale)
	}
	next.Seq = seq
	from := c.state.Kind
	c.state = next
	if next.Kind == KindList {
		c.lastQuery = next.Query
	}
	c.mu.Unlock()

	slog.Debug("View transition", "viewer", c.viewer, "from", from, "to", next.Kind, "seq", seq)
	if c.onChange != nil {
		c.onChange(Transition{Viewer: c.viewer, From: from, To: next})
	}
	return next, nil
}
