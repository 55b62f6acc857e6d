package text_cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

// Built-in footer patterns. A match removes itself and everything after it,
// since Teams appends its boilerplate below the human-written part.
var footerPatterns = []string{
	`(?s)Need help\?.*?<https://aka\.ms/JoinTeamsMeeting\?omkt=.*?>`,
	`(?s)Microsoft Teams.*?(?:\r\n|\n).*?Join conversation`,
	`(?s)________________+.*$`,
	`(?s)Click here to join.*$`,
	`(?s)Join with a video conferencing.*$`,
	`(?s)Join Microsoft Teams Meeting.*$`,
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Cleaner strips Microsoft Teams boilerplate from meeting bodies.
type Cleaner struct {
	patterns []*regexp.Regexp
}

// NewCleaner compiles the built-in footer patterns plus any extra patterns
// from configuration. An invalid extra pattern fails construction.
func NewCleaner(extraPatterns ...string) (*Cleaner, error) {
	all := make([]string, 0, len(footerPatterns)+len(extraPatterns))
	all = append(all, footerPatterns...)
	all = append(all, extraPatterns...)
	compiled := make([]*regexp.Regexp, 0, len(all))
	for _, p := range all {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile cleanup pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Cleaner{patterns: compiled}, nil
}

// Clean cuts the body at the first match of each pattern, then trims the
// result and collapses runs of blank lines. Empty input stays empty.
func (c *Cleaner) Clean(body string) string {
	if body == "" {
		return ""
	}
	for _, re := range c.patterns {
		if loc := re.FindStringIndex(body); loc != nil {
			body = body[:loc[0]]
		}
	}
	body = strings.TrimSpace(body)
	return blankLines.ReplaceAllString(body, "\n\n")
}
