package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FlashMessages renders the flash banner. It writes nothing when there are
// no messages.
func FlashMessages(data FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Empty() {
			return nil
		}
		if _, err := io.WriteString(w, `<div id="flash" class="container mx-auto mt-4 space-y-2">`); err != nil {
			return err
		}
		for _, msg := range data.Success {
			if err := writeFlash(w, "flash-success p-3 rounded-lg bg-green-100 text-green-800", msg); err != nil {
				return err
			}
		}
		for _, msg := range data.Error {
			if err := writeFlash(w, "flash-error p-3 rounded-lg bg-red-100 text-red-800", msg); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeFlash(w io.Writer, class, msg string) error {
	_, err := io.WriteString(w, `<div class="`+class+`" role="status">`+templ.EscapeString(msg)+`</div>`)
	return err
}
