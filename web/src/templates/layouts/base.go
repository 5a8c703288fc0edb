package layouts

import (
	"github.com/nfrund/friends/internal/i18n"
	"github.com/nfrund/friends/internal/view"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the document shell. The login dialog is
// rendered even for logged-in visitors so an expired session can log in
// again in place.
func Base(t i18n.Localizer, title string, loggedIn bool, flashes view.FlashData, content g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(t.T("app.title"), title))),
				h.Link(h.Rel("stylesheet"), h.Href("/static/friends.css")),
				h.Script(h.Src(htmxSrc)),
			),
			h.Body(
				h.Class("bg-gray-50 min-h-screen"),
				Header(t, loggedIn),
				view.AdaptTemplToGomponent(view.FlashMessages(flashes)),
				h.Main(h.Class("container mx-auto p-4"), content),
				LoginDialog(t),
				RegisterDialog(t),
			),
		),
	)
}

// Header renders the navigation bar. Logged-in visitors get a logout
// button; everyone else gets login and registration buttons opening the
// dialogs.
func Header(t i18n.Localizer, loggedIn bool) g.Node {
	if loggedIn {
		return h.Header(
			h.Class("flex justify-end gap-2 p-4 bg-white shadow"),
			h.Form(
				h.Method("post"),
				h.Action("/auth/logout"),
				h.Button(h.ID("logout-btn"), h.Type("submit"), h.Class("px-4 py-2 border rounded-lg"), g.Text(t.T("header.logout"))),
			),
		)
	}
	return h.Header(
		h.Class("flex justify-end gap-2 p-4 bg-white shadow"),
		h.Button(
			h.ID("login-btn"), h.Type("button"), h.Class("px-4 py-2 border rounded-lg"),
			g.Attr("onclick", showModal("loginModal")),
			g.Text(t.T("header.login")),
		),
		h.Button(
			h.ID("reg-btn"), h.Type("button"), h.Class("px-4 py-2 bg-blue-500 text-white rounded-lg"),
			g.Attr("onclick", showModal("registerModal")),
			g.Text(t.T("header.register")),
		),
	)
}

// LoginDialog renders the login form posting to /auth/login.
func LoginDialog(t i18n.Localizer) g.Node {
	return g.El("dialog",
		h.ID("loginModal"),
		h.Class("rounded-xl p-6 shadow-xl"),
		h.Form(
			h.ID("login-form"),
			h.Class("space-y-3"),
			h.Method("post"),
			h.Action("/auth/login"),
			h.H2(h.Class("text-xl font-bold"), g.Text(t.T("login.title"))),
			field(t.T("login.username"), "username", "text", true),
			field(t.T("login.password"), "password", "password", true),
			h.Div(
				h.Class("flex gap-2"),
				h.Button(h.Type("submit"), h.Class("px-4 py-2 bg-blue-500 text-white rounded-lg"), g.Text(t.T("login.submit"))),
				h.Button(h.ID("login-cancel"), h.Type("button"), h.Class("px-4 py-2 border rounded-lg"),
					g.Attr("onclick", closeModal("loginModal")), g.Text(t.T("login.cancel"))),
			),
			h.Button(h.ID("open-register"), h.Type("button"), h.Class("text-sm text-blue-600"),
				g.Attr("onclick", closeModal("loginModal")+showModal("registerModal")), g.Text(t.T("login.to.register"))),
		),
	)
}

// RegisterDialog renders the multipart registration form posting to
// /auth/register.
func RegisterDialog(t i18n.Localizer) g.Node {
	return g.El("dialog",
		h.ID("registerModal"),
		h.Class("rounded-xl p-6 shadow-xl"),
		h.Form(
			h.ID("register-form"),
			h.Class("space-y-3"),
			h.Method("post"),
			h.Action("/auth/register"),
			g.Attr("enctype", "multipart/form-data"),
			h.H2(h.Class("text-xl font-bold"), g.Text(t.T("register.title"))),
			field(t.T("login.username"), "username", "text", true),
			field(t.T("register.email"), "email", "email", true),
			field(t.T("login.password"), "password", "password", true),
			field(t.T("register.first_name"), "first_name", "text", false),
			field(t.T("register.last_name"), "last_name", "text", false),
			field(t.T("register.avatar"), "avatar", "file", false),
			h.Div(
				h.Class("flex gap-2"),
				h.Button(h.Type("submit"), h.Class("px-4 py-2 bg-blue-500 text-white rounded-lg"), g.Text(t.T("register.submit"))),
				h.Button(h.ID("register-cancel"), h.Type("button"), h.Class("px-4 py-2 border rounded-lg"),
					g.Attr("onclick", closeModal("registerModal")), g.Text(t.T("login.cancel"))),
			),
			h.Button(h.ID("open-login"), h.Type("button"), h.Class("text-sm text-blue-600"),
				g.Attr("onclick", closeModal("registerModal")+showModal("loginModal")), g.Text(t.T("register.to.login"))),
		),
	)
}

func field(label, name, typ string, required bool) g.Node {
	return h.Label(
		h.Class("block"),
		h.Span(h.Class("block text-sm text-gray-700"), g.Text(label)),
		h.Input(h.Type(typ), h.Name(name), h.Class("w-full p-2 border rounded-lg"), g.If(required, h.Required())),
	)
}

func showModal(id string) string {
	return "document.getElementById('" + id + "').showModal();"
}

func closeModal(id string) string {
	return "document.getElementById('" + id + "').close();"
}
