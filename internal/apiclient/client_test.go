package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/friends/internal/apiclient"
	"github.com/nfrund/friends/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cli, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return cli
}

func TestNew(t *testing.T) {
	_, err := apiclient.New("  ")
	assert.Error(t, err, "blank base url must be rejected")

	cli, err := apiclient.New("localhost:8000/", apiclient.WithTimeout(time.Second))
	require.NoError(t, err)
	assert.NotNil(t, cli)
}

func TestWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	for name, opts := range map[string]func(*http.Client) []apiclient.Option{
		"timeout first": func(h *http.Client) []apiclient.Option {
			return []apiclient.Option{apiclient.WithTimeout(50 * time.Millisecond), apiclient.WithHTTPClient(h)}
		},
		"timeout last": func(h *http.Client) []apiclient.Option {
			return []apiclient.Option{apiclient.WithHTTPClient(h), apiclient.WithTimeout(50 * time.Millisecond)}
		},
	} {
		t.Run(name, func(t *testing.T) {
			shared := &http.Client{}
			cli, err := apiclient.New(srv.URL, opts(shared)...)
			require.NoError(t, err)

			_, err = cli.ListUsers(context.Background(), "tok", "")
			assert.ErrorIs(t, err, domain.ErrNetworkFailure)
			assert.Zero(t, shared.Timeout, "the caller's client must not be modified")
		})
	}
}

func TestListUsers(t *testing.T) {
	t.Run("sends bearer token and search query", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/users/", r.URL.Path)
			assert.Equal(t, "al", r.URL.Query().Get("search"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"count":1,"next":null,"previous":null,"results":[{"id":1,"username":"alice","first_name":"Alice","last_name":"Smith","avatar":null}]}`)
		})

		users, err := cli.ListUsers(context.Background(), "tok", " al ")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, 1, users[0].ID)
		assert.Equal(t, "alice", users[0].Username)
		assert.Nil(t, users[0].Avatar)
	})

	t.Run("empty query lists everyone", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			_, _ = io.WriteString(w, `{"results":[]}`)
		})

		users, err := cli.ListUsers(context.Background(), "tok", "")
		require.NoError(t, err)
		assert.Empty(t, users)
		assert.NotNil(t, users)
	})

	t.Run("query is escaped", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Иван Иванов&x=1", r.URL.Query().Get("search"))
			_, _ = io.WriteString(w, `{"results":[]}`)
		})

		_, err := cli.ListUsers(context.Background(), "tok", "Иван Иванов&x=1")
		require.NoError(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"detail":"boom"}`)
		})

		_, err := cli.ListUsers(context.Background(), "tok", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrHTTP)
		assert.NotErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, 500, domain.StatusOf(err))
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unauthorized is distinguished", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Given token not valid for any token type"}`)
		})

		_, err := cli.ListUsers(context.Background(), "expired", "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("malformed body", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"results": [`)
		})

		_, err := cli.ListUsers(context.Background(), "tok", "")
		assert.ErrorIs(t, err, domain.ErrDecodeFailure)
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		cli, err := apiclient.New(base)
		require.NoError(t, err)
		_, err = cli.ListUsers(context.Background(), "tok", "")
		assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	})
}

func TestGetUser(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/1/", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":1,"username":"alice","first_name":"Alice","last_name":"Smith","email":null,"avatar":{"image":"/media/a.png"}}`)
	})

	user, err := cli.GetUser(context.Background(), "tok", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.Email)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "/media/a.png", user.Avatar.Image)
}

func TestObtainToken(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/token/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"No active account found with the given credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access":"a-token","refresh":"r-token"}`)
	})

	pair, err := cli.ObtainToken(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenPair{Access: "a-token", Refresh: "r-token"}, pair)

	_, err = cli.ObtainToken(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "No active account")
}

func TestRegister(t *testing.T) {
	t.Run("sends multipart form with avatar", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/registration/", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "alice", r.FormValue("username"))
			assert.Equal(t, "alice@example.com", r.FormValue("email"))
			assert.Empty(t, r.MultipartForm.Value["last_name"], "blank fields are omitted")

			file, header, err := r.FormFile("avatar")
			require.NoError(t, err)
			defer file.Close()
			content, _ := io.ReadAll(file)
			assert.Equal(t, "me.png", header.Filename)
			assert.Equal(t, "png-bytes", string(content))
			w.WriteHeader(http.StatusCreated)
		})

		err := cli.Register(context.Background(), domain.Registration{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password123",
			Avatar:   &domain.Upload{Filename: "me.png", Content: strings.NewReader("png-bytes")},
		})
		require.NoError(t, err)
	})

	t.Run("flattens validation errors", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"username":["A user with that username already exists."],"email":["Enter a valid email address."]}`)
		})

		err := cli.Register(context.Background(), domain.Registration{Username: "alice"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrHTTP)
		assert.Contains(t, err.Error(), "email: Enter a valid email address.; username: A user with that username already exists.")
	})
}

func TestGetImage(t *testing.T) {
	t.Run("url encoded payload", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/images/7", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
			_, _ = io.WriteString(w, "id=7&image=%2Fmedia%2Fcat.png&gallery=3")
		})

		img, err := cli.GetImage(context.Background(), "tok", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, img.ID)
		assert.Equal(t, "/media/cat.png", img.URL)
		assert.Equal(t, "3", img.Fields.Get("gallery"))
	})

	t.Run("multipart payload", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			mw := multipart.NewWriter(w)
			w.Header().Set("Content-Type", mw.FormDataContentType())
			_ = mw.WriteField("id", "9")
			_ = mw.WriteField("image", "/media/dog.png")
			_ = mw.Close()
		})

		img, err := cli.GetImage(context.Background(), "tok", 9)
		require.NoError(t, err)
		assert.Equal(t, 9, img.ID)
		assert.Equal(t, "/media/dog.png", img.URL)
	})

	t.Run("json payload is a decode failure", func(t *testing.T) {
		cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":1}`)
		})

		_, err := cli.GetImage(context.Background(), "tok", 1)
		assert.ErrorIs(t, err, domain.ErrDecodeFailure)
	})
}
