package friends

import (
	"context"
	"strings"
	"sync"

	"github.com/nfrund/friends/internal/domain"
	"github.com/nfrund/friends/internal/i18n"
)

// fakeDirectory serves a fixed user set. A query listed in gates blocks
// until its channel is closed; started receives the query once the call is
// in flight.
type fakeDirectory struct {
	users   []domain.UserSummary
	details map[int]*domain.UserDetail
	err     error

	gates   map[string]chan struct{}
	started chan string

	mu      sync.Mutex
	queries []string
	tokens  []string
}

func (f *fakeDirectory) ListUsers(ctx context.Context, token, query string) ([]domain.UserSummary, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.tokens = append(f.tokens, token)
	gate := f.gates[query]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- query
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	out := []domain.UserSummary{}
	for _, u := range f.users {
		if strings.Contains(u.Username, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetUser(ctx context.Context, token string, id int) (*domain.UserDetail, error) {
	f.mu.Lock()
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.details[id]
	if !ok {
		return nil, &domain.APIError{Kind: domain.KindHTTP, Status: 404, Body: "Not found."}
	}
	return u, nil
}

func (f *fakeDirectory) recordedQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func strPtr(s string) *string { return &s }

func sampleUsers() []domain.UserSummary {
	return []domain.UserSummary{
		{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Liddell", Avatar: strPtr("https://cdn.example.test/alice.png")},
		{ID: 2, Username: "bob", FirstName: "Bob", LastName: "Builder"},
		{ID: 3, Username: "albert", FirstName: "Albert"},
	}
}

func sampleDetails() map[int]*domain.UserDetail {
	return map[int]*domain.UserDetail{
		1: {ID: 1, Username: "alice", FirstName: "Alice", LastName: "Liddell"},
		2: {ID: 2, Username: "bob", Email: strPtr("bob@example.test"), Avatar: &domain.Avatar{Image: "https://cdn.example.test/bob.png"}},
	}
}

func englishLocalizer() i18n.Localizer {
	bundle := i18n.MustEmbedded("ru")
	return bundle.Localizer(bundle.Match("en"))
}

func russianLocalizer() i18n.Localizer {
	bundle := i18n.MustEmbedded("ru")
	return bundle.Localizer(bundle.Match("ru-RU"))
}
