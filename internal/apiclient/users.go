package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nfrund/friends/internal/domain"
)

const usersPath = "/api/v1/users/"

// ListUsers returns the user listing, filtered by query when it is not blank.
func (c *Client) ListUsers(ctx context.Context, token, query string) ([]domain.UserSummary, error) {
	path := usersPath
	if q := strings.TrimSpace(query); q != "" {
		path += "?search=" + url.QueryEscape(q)
	}
	var page domain.UserPage
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []domain.UserSummary{}, nil
	}
	return page.Results, nil
}

// GetUser returns a single user's details.
func (c *Client) GetUser(ctx context.Context, token string, id int) (*domain.UserDetail, error) {
	var user domain.UserDetail
	path := fmt.Sprintf("%s%d/", usersPath, id)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
