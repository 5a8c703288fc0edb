package friends

import (
	"context"
	"log/slog"

	"github.com/nfrund/friends/internal/pubsub"
)

// TopicViewChanged carries one ViewChanged event per committed transition.
const TopicViewChanged = "friends.view.changed"

// ViewChanged is the wire form of a Transition.
type ViewChanged struct {
	Viewer  string `json:"viewer"`
	From    string `json:"from"`
	To      string `json:"to"`
	Seq     uint64 `json:"seq"`
	Query   string `json:"query,omitempty"`
	Results int    `json:"results,omitempty"`
	UserID  int    `json:"user_id,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// ViewChangedEvent is the typed TopicViewChanged event.
var ViewChangedEvent = pubsub.NewEvent[ViewChanged](TopicViewChanged)

func newViewChanged(tr Transition) ViewChanged {
	ev := ViewChanged{
		Viewer: tr.Viewer,
		From:   tr.From.String(),
		To:     tr.To.Kind.String(),
		Seq:    tr.To.Seq,
		Query:  tr.To.Query,
	}
	switch tr.To.Kind {
	case KindList:
		ev.Results = len(tr.To.Users)
	case KindDetail:
		ev.UserID = tr.To.User.ID
	case KindError:
		ev.Status = tr.To.Failure.Status
	}
	return ev
}

// PublishTransitions returns a TransitionFunc that publishes every
// transition as a ViewChangedEvent.
func PublishTransitions(pub pubsub.Publisher) TransitionFunc {
	return func(tr Transition) {
		if err := pubsub.Publish(context.Background(), pub, ViewChangedEvent, tr.Viewer, newViewChanged(tr)); err != nil {
			slog.Error("Failed to publish view transition", "viewer", tr.Viewer, "error", err)
		}
	}
}

// LogTransitions records view transitions in the activity log.
func LogTransitions(ctx context.Context, ev ViewChanged) error {
	slog.InfoContext(ctx, "friends view changed",
		"viewer", ev.Viewer,
		"from", ev.From,
		"to", ev.To,
		"seq", ev.Seq,
		"query", ev.Query,
		"results", ev.Results,
		"user_id", ev.UserID,
		"status", ev.Status,
	)
	return nil
}
