package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// PageDataScriptID is the id of the script element holding the page data.
const PageDataScriptID = "page-data"

// Page renders the HTML shell the front end boots from. data is serialized
// into a JSON script element so the client reads it without a second request.
func Page(title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html lang=\"ja\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title>",
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if err := templ.JSONScript(PageDataScriptID, data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</head><body><div id=\"app\"></div></body></html>")
		return err
	})
}
