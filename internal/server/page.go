package server

import (
	_ "embed"
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed web/monitor.html
var monitorPage []byte

// minifyPage shrinks the monitor page, including its inline style and script.
func minifyPage(src []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{KeepDocumentTags: true})
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	out, err := m.Bytes("text/html", src)
	if err != nil {
		return nil, fmt.Errorf("minify monitor page: %w", err)
	}
	return out, nil
}
