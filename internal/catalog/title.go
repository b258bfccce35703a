package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayTitle normalizes a user-supplied name into a catalog display
// title. Separators become spaces and words are title cased.
func DisplayTitle(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return ""
	}
	return titleCaser.String(cleaned)
}
