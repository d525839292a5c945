package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/oadl/heatsheet/pkg/render"
)

// defaultCSS is the embedded stylesheet emitted by WithStylesheet. The
// odd-row rule is the cosmetic striping; removing it changes nothing
// about the data.
const defaultCSS = `
    .heatsheet { font-family: sans-serif; }
    .heatsheet .race-title { font-size: 1.2em; margin: 0.8em 0 0.2em; }
    .heatsheet .heat-title { font-size: 1em; margin: 0.5em 0 0.2em; }
    .heatsheet table { border-collapse: collapse; }
    .heatsheet th, .heatsheet td { border: 1px solid #ccc; padding: 2px 8px; text-align: left; }
    .heatsheet tr.odd td { background: #f3f3f3; }
    .heatsheet .empty, .heatsheet .error { padding: 1em; }
    .heatsheet .error { color: #b00020; }`

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	class      string
	stylesheet bool
	document   bool
	title      string
}

// WithClass overrides the container's CSS class (default "heatsheet").
func WithClass(class string) HTMLOption {
	return func(r *htmlRenderer) { r.class = class }
}

// WithStylesheet embeds the default stylesheet ahead of the container,
// for surfaces that don't bring their own styling.
func WithStylesheet() HTMLOption {
	return func(r *htmlRenderer) { r.stylesheet = true }
}

// WithDocument wraps the output in a complete HTML document with the
// given title. Implies WithStylesheet.
func WithDocument(title string) HTMLOption {
	return func(r *htmlRenderer) { r.document = true; r.stylesheet = true; r.title = title }
}

// RenderHTML serializes a display tree as container markup. All cell and
// title text is escaped; values are otherwise emitted verbatim. The
// output replaces whatever the host container previously held.
func RenderHTML(t *render.Tree, opts ...HTMLOption) []byte {
	r := htmlRenderer{class: "heatsheet"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.document {
		fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(r.title))
		fmt.Fprintf(&buf, "<style>%s\n</style>\n</head>\n<body>\n", defaultCSS)
	} else if r.stylesheet {
		fmt.Fprintf(&buf, "<style>%s\n</style>\n", defaultCSS)
	}

	fmt.Fprintf(&buf, "<div class=%q>\n", r.class)
	switch t.State {
	case render.StateEmpty:
		fmt.Fprintf(&buf, "  <div class=\"empty\">%s</div>\n", html.EscapeString(t.Message))
	case render.StateError:
		fmt.Fprintf(&buf, "  <div class=\"error\">%s</div>\n", html.EscapeString(t.Message))
	default:
		for _, race := range t.Races {
			renderRaceHTML(&buf, race)
		}
	}
	buf.WriteString("</div>\n")

	if r.document {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

func renderRaceHTML(buf *bytes.Buffer, race render.RaceSection) {
	buf.WriteString("  <section class=\"race\">\n")
	fmt.Fprintf(buf, "    <h2 class=\"race-title\">%s</h2>\n", html.EscapeString(race.Title))
	for _, heat := range race.Heats {
		renderHeatHTML(buf, heat)
	}
	buf.WriteString("  </section>\n")
}

func renderHeatHTML(buf *bytes.Buffer, heat render.HeatSection) {
	buf.WriteString("    <section class=\"heat\">\n")
	fmt.Fprintf(buf, "      <h3 class=\"heat-title\">%s</h3>\n", html.EscapeString(heat.Title))
	buf.WriteString("      <table>\n        <thead>\n          <tr>")
	for _, h := range render.Header {
		fmt.Fprintf(buf, "<th>%s</th>", html.EscapeString(h))
	}
	buf.WriteString("</tr>\n        </thead>\n        <tbody>\n")
	for _, row := range heat.Rows {
		class := "even"
		if row.Alt {
			class = "odd"
		}
		fmt.Fprintf(buf, "          <tr class=%q>", class)
		for _, cell := range row.Cells {
			fmt.Fprintf(buf, "<td>%s</td>", html.EscapeString(cell))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("        </tbody>\n      </table>\n    </section>\n")
}
