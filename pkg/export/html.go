package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Calendar events</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1f2430; }
h1 { border-bottom: 2px solid #e3e6ec; padding-bottom: 0.3rem; }
h2 { margin-top: 2rem; color: #39435c; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLRenderer converts the markdown rendering into a standalone HTML page.
type HTMLRenderer struct {
	markdown *MarkdownRenderer
	md       goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		markdown: NewMarkdownRenderer(),
		md:       goldmark.New(),
	}
}

func (r *HTMLRenderer) Render(result calendar_sync.Result) (string, error) {
	source, err := r.markdown.Render(result)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return fmt.Sprintf(htmlShell, buf.String()), nil
}
