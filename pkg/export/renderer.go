package export

import (
	"fmt"

	"github.com/outcal/outcal/pkg/calendar_sync"
)

// Renderer turns a synchronization result into display text.
type Renderer interface {
	Render(result calendar_sync.Result) (string, error)
}

const (
	FormatConsole  = "console"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// NewRenderer returns the renderer for the given format name. An empty format
// selects the console renderer.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatConsole, "":
		return NewConsoleRenderer(), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
