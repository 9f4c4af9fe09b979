// Package sanitize reduces operator-typed free text to plain text before it is
// sent to the REST API and shown to members.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// PlainText strips every tag and trims surrounding whitespace. Entities escaped
// by the policy are decoded again so "Tom & Jerry" survives unchanged.
func PlainText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	cleaned := policy().Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
