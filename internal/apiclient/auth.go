package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/nfrund/friends/internal/domain"
)

// ObtainToken exchanges credentials for an access/refresh token pair.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var pair domain.TokenPair
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/token/", jsonBody: body}, &pair); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Register submits the sign-up form as multipart/form-data.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"username", reg.Username},
		{"email", reg.Email},
		{"password", reg.Password},
		{"first_name", reg.FirstName},
		{"last_name", reg.LastName},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write form field %s: %w", f.name, err)
		}
	}
	if reg.Avatar != nil && reg.Avatar.Content != nil {
		part, err := w.CreateFormFile("avatar", reg.Avatar.Filename)
		if err != nil {
			return fmt.Errorf("create avatar part: %w", err)
		}
		if _, err := io.Copy(part, reg.Avatar.Content); err != nil {
			return fmt.Errorf("copy avatar: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/v1/registration/",
		rawBody:     &buf,
		contentType: w.FormDataContentType(),
	}, nil)
}
