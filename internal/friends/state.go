package friends

import (
	"errors"
	"fmt"

	"github.com/nfrund/friends/internal/domain"
)

// Kind enumerates what the friends region currently shows.
type Kind int

const (
	KindEmpty Kind = iota
	KindList
	KindDetail
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindList:
		return "list"
	case KindDetail:
		return "detail"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message keys rendered by the friends region.
const (
	MsgFind              = "friends.find"
	MsgSearchPlaceholder = "friends.search.placeholder"
	MsgSearchButton      = "friends.search.button"
	MsgListEmpty         = "friends.list.empty"
	MsgListFailed        = "friends.list.failed"
	MsgDetailFailed      = "friends.detail.failed"
	MsgEmail             = "friends.detail.email"
	MsgEmailMissing      = "friends.detail.email.missing"
	MsgBack              = "friends.detail.back"
	MsgReauth            = "friends.reauth"
	MsgLogin             = "header.login"
)

// Failure describes an Error view.
type Failure struct {
	MessageKey string
	// Reauth asks the viewer to log in again instead of showing a generic
	// failure.
	Reauth bool
	Status int
}

// ViewState is the single source of truth for the friends region. Exactly
// one of Users, User and Failure is meaningful, selected by Kind.
type ViewState struct {
	Kind    Kind
	Query   string
	Users   []domain.UserSummary
	User    *domain.UserDetail
	Failure *Failure
	// Seq is the sequence number of the request that produced the state.
	Seq uint64
}

func listState(query string, users []domain.UserSummary) ViewState {
	return ViewState{Kind: KindList, Query: query, Users: users}
}

func detailState(user *domain.UserDetail) ViewState {
	return ViewState{Kind: KindDetail, User: user}
}

func errorState(err error, messageKey string) ViewState {
	if errors.Is(err, domain.ErrUnauthorized) {
		return ViewState{Kind: KindError, Failure: &Failure{
			MessageKey: MsgReauth,
			Reauth:     true,
			Status:     domain.StatusOf(err),
		}}
	}
	return ViewState{Kind: KindError, Failure: &Failure{
		MessageKey: messageKey,
		Status:     domain.StatusOf(err),
	}}
}
