package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nfrund/friends/internal/domain"
)

const maxFormMemory = 8 << 20

// GetImage fetches an image record. The endpoint answers with form data
// rather than JSON.
func (c *Client) GetImage(ctx context.Context, token string, id int) (*domain.Image, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/v1/images/%d", id),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	values, err := decodeForm(resp.Header.Get("Content-Type"), resp.Body)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.KindDecode, Status: resp.StatusCode, Err: err}
	}

	img := &domain.Image{ID: id, URL: values.Get("image"), Fields: values}
	if raw := values.Get("id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &domain.APIError{Kind: domain.KindDecode, Status: resp.StatusCode, Err: fmt.Errorf("image id %q: %w", raw, err)}
		}
		img.ID = parsed
	}
	return img, nil
}

func decodeForm(contentType string, body io.Reader) (url.Values, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		return url.ParseQuery(string(data))
	case "multipart/form-data":
		form, err := multipart.NewReader(body, params["boundary"]).ReadForm(maxFormMemory)
		if err != nil {
			return nil, err
		}
		defer form.RemoveAll()
		values := url.Values{}
		for k, vs := range form.Value {
			values[k] = vs
		}
		for k, files := range form.File {
			for _, fh := range files {
				values.Add(k, fh.Filename)
			}
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported content type %q", mediaType)
	}
}
