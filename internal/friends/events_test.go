package friends

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nfrund/friends/internal/domain"
	"github.com/nfrund/friends/internal/pubsub"
	"github.com/nfrund/friends/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	msgs []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublishTransitions(t *testing.T) {
	pub := &recordingPublisher{}
	dir := &fakeDirectory{users: sampleUsers(), details: sampleDetails()}
	ctrl := NewController("viewer-1", dir, PublishTransitions(pub))
	ctx := context.Background()

	_, err := ctrl.Search(ctx, "tok", "al")
	require.NoError(t, err)
	_, err = ctrl.Open(ctx, "tok", 2)
	require.NoError(t, err)
	_, err = ctrl.Open(ctx, "", 2)
	require.NoError(t, err)

	require.Len(t, pub.msgs, 3)
	var events []ViewChanged
	for _, m := range pub.msgs {
		assert.Equal(t, TopicViewChanged, m.Topic)
		assert.Equal(t, "viewer-1", m.UserID)
		var ev ViewChanged
		require.NoError(t, json.Unmarshal(m.Payload, &ev))
		events = append(events, ev)
	}

	assert.Equal(t, ViewChanged{Viewer: "viewer-1", From: "empty", To: "list", Seq: 1, Query: "al", Results: 2}, events[0])
	assert.Equal(t, ViewChanged{Viewer: "viewer-1", From: "list", To: "detail", Seq: 2, UserID: 2}, events[1])
	assert.Equal(t, "error", events[2].To)
	assert.Equal(t, domain.StatusOf(errNoCredential), events[2].Status)
}

func TestModule(t *testing.T) {
	bridge := pubsub.NewWatermillBridge(false)
	t.Cleanup(func() { _ = bridge.Close() })

	m := New(Dependencies{
		Users:      &fakeDirectory{users: sampleUsers()},
		Publisher:  bridge,
		Subscriber: bridge,
	})
	assert.Equal(t, "friends", m.Name())

	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))
	assert.Same(t, m.Viewers(), registry.MustGet(reg, ViewersKey))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := newTestEcho("tok")
	require.NoError(t, m.Boot(ctx, e.Group("/"+m.Name()), reg))

	received := make(chan ViewChanged, 1)
	require.NoError(t, pubsub.Subscribe(ctx, bridge, ViewChangedEvent, func(ctx context.Context, ev ViewChanged) error {
		received <- ev
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/friends/users?search=bob", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case ev := <-received:
		assert.Equal(t, "list", ev.To)
		assert.Equal(t, "bob", ev.Query)
		assert.Equal(t, 1, ev.Results)
	case <-time.After(2 * time.Second):
		t.Fatal("view transition not published")
	}
	require.NoError(t, m.Shutdown(ctx))
}
