package pages

import (
	"github.com/nfrund/friends/internal/i18n"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// MainBlockID is the container the friends panel is swapped into.
const MainBlockID = "main-block"

// Home renders the landing page: the "find friends" trigger and the empty
// main block it fills.
func Home(t i18n.Localizer) g.Node {
	return g.Group{
		h.Button(
			h.ID("friend-finder"),
			h.Type("button"),
			h.Class("mb-4 px-4 py-2 bg-blue-500 text-white rounded-lg hover:bg-blue-600 transition"),
			hx.Get("/friends"),
			hx.Target("#"+MainBlockID),
			hx.Swap("innerHTML"),
			g.Text(t.T("friends.find")),
		),
		h.Div(h.ID(MainBlockID)),
	}
}
