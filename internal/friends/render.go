package friends

import (
	"fmt"
	"strconv"

	"github.com/nfrund/friends/internal/domain"
	"github.com/nfrund/friends/internal/i18n"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// DOM ids of the two containers inside the main block.
const (
	SearchBlockID = "search-block"
	UsersListID   = "users-list"
)

const placeholderGlyph = "👤"

// RenderList renders one clickable card per user. Each card carries the
// user's id in data-user-id and loads the profile into the list container.
func RenderList(users []domain.UserSummary) g.Node {
	return g.Group(g.Map(users, renderCard))
}

func renderCard(u domain.UserSummary) g.Node {
	avatar := ""
	if u.Avatar != nil {
		avatar = *u.Avatar
	}
	return h.Div(
		h.Class("user-card flex items-center gap-4 p-4 mb-3 bg-white border rounded-xl shadow hover:shadow-md transition cursor-pointer"),
		g.Attr("data-user-id", strconv.Itoa(u.ID)),
		hx.Get(profilePath(u.ID)),
		hx.Target("#"+UsersListID),
		hx.Swap("innerHTML"),
		h.Div(
			h.Class("w-12 h-12 rounded-full bg-gray-200 overflow-hidden flex-shrink-0"),
			renderAvatar(avatar, u.Username),
		),
		h.Div(
			h.Div(h.Class("font-semibold text-gray-800"), g.Text(u.Username)),
			h.Div(h.Class("text-sm text-gray-600"), g.Text(u.FullName())),
		),
	)
}

// RenderDetail renders a single profile card with a way back to the list.
// A missing email shows the localized placeholder.
func RenderDetail(u *domain.UserDetail, t i18n.Localizer) g.Node {
	avatar := ""
	if u.Avatar != nil {
		avatar = u.Avatar.Image
	}
	email := t.T(MsgEmailMissing)
	if u.Email != nil && *u.Email != "" {
		email = *u.Email
	}

	return h.Div(
		h.Class("user-profile p-4 border rounded-xl bg-white shadow"),
		g.Attr("data-profile-id", strconv.Itoa(u.ID)),
		h.Div(
			h.Class("flex items-center gap-4"),
			h.Div(
				h.Class("w-20 h-20 rounded-full overflow-hidden bg-gray-200"),
				renderAvatar(avatar, u.Username),
			),
			h.Div(
				h.H2(h.Class("text-xl font-bold"), g.Text(u.Username)),
				h.P(h.Class("text-gray-600"), g.Text(u.FullName())),
			),
		),
		h.Div(
			h.Class("mt-4"),
			h.P(h.Class("text-gray-700"), g.Textf("%s: %s", t.T(MsgEmail), email)),
			h.P(h.Class("text-gray-700"), g.Textf("ID: %d", u.ID)),
		),
		h.Button(
			h.Type("button"),
			h.Class("mt-4 px-4 py-2 border rounded-lg hover:bg-gray-100 transition"),
			hx.Get("/friends/back"),
			hx.Target("#"+UsersListID),
			hx.Swap("innerHTML"),
			g.Text(t.T(MsgBack)),
		),
	)
}

func renderAvatar(src, alt string) g.Node {
	if src == "" {
		return h.Span(
			h.Class("flex items-center justify-center w-full h-full text-gray-500"),
			g.Text(placeholderGlyph),
		)
	}
	return h.Img(h.Src(src), h.Alt(alt), h.Class("w-full h-full object-cover"))
}

// RenderSearch renders the search bar. Submitting it replaces the list
// container with the results.
func RenderSearch(t i18n.Localizer, query string) g.Node {
	return h.Form(
		h.Class("mb-4"),
		hx.Get("/friends/users"),
		hx.Target("#"+UsersListID),
		hx.Swap("innerHTML"),
		h.Div(
			h.Class("flex gap-2"),
			h.Input(
				h.ID("search-input"),
				h.Type("text"),
				h.Name("search"),
				h.Value(query),
				h.Placeholder(t.T(MsgSearchPlaceholder)),
				h.Class("flex-1 p-2 border rounded-lg shadow-sm focus:ring focus:ring-blue-300 focus:outline-none"),
			),
			h.Button(
				h.ID("search-btn"),
				h.Type("submit"),
				h.Class("px-4 py-2 bg-blue-500 text-white rounded-lg hover:bg-blue-600 transition"),
				g.Text(t.T(MsgSearchButton)),
			),
		),
	)
}

// RenderError renders a failure in place of the list or profile. A
// re-authentication failure offers the login dialog.
func RenderError(t i18n.Localizer, f *Failure) g.Node {
	return h.Div(
		h.Class("friends-error"),
		g.Attr("role", "alert"),
		h.P(h.Class("text-red-600"), g.Text(t.T(f.MessageKey))),
		g.If(f.Reauth,
			h.Button(
				h.Type("button"),
				h.Class("mt-2 px-4 py-2 bg-blue-500 text-white rounded-lg"),
				g.Attr("onclick", "document.getElementById('loginModal').showModal()"),
				g.Text(t.T(MsgLogin)),
			),
		),
	)
}

// RenderState renders the content of the list container for s.
func RenderState(t i18n.Localizer, s ViewState) g.Node {
	switch s.Kind {
	case KindList:
		if len(s.Users) == 0 {
			return h.P(h.Class("friends-empty text-gray-500"), g.Text(t.T(MsgListEmpty)))
		}
		return RenderList(s.Users)
	case KindDetail:
		return RenderDetail(s.User, t)
	case KindError:
		return RenderError(t, s.Failure)
	default:
		return g.Group(nil)
	}
}

// RenderPanel renders both containers of the friends region: the search bar
// and the list container holding s. The result replaces the main block
// wholesale, so activating twice never duplicates the containers.
func RenderPanel(t i18n.Localizer, s ViewState) g.Node {
	return g.Group{
		h.Div(h.ID(SearchBlockID), RenderSearch(t, s.Query)),
		h.Div(h.ID(UsersListID), RenderState(t, s)),
	}
}

func profilePath(id int) string {
	return fmt.Sprintf("/friends/users/%d", id)
}
