package content

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/mmdatafocus/portal_backend/models"
)

// seedFile is the portalctl content file:
//
//	[pages.book_consultation_page]
//	hero_title = "Book a Consultation"
type seedFile struct {
	Pages map[string]map[string]string `toml:"pages"`
}

// ParseSeed decodes a content file into rows ordered by page then element.
func ParseSeed(data string) ([]models.PageContent, error) {
	var f seedFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode content file: %w", err)
	}
	var rows []models.PageContent
	for page, elements := range f.Pages {
		for element, value := range elements {
			rows = append(rows, models.PageContent{PageKey: page, ElementKey: element, Value: value})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PageKey != rows[j].PageKey {
			return rows[i].PageKey < rows[j].PageKey
		}
		return rows[i].ElementKey < rows[j].ElementKey
	})
	return rows, nil
}

// FallbackSeed returns the built-in defaults for pageKey as rows, so the
// store can be primed with the same copy the resolver falls back to.
func FallbackSeed(pageKey string) []models.PageContent {
	values := Fallback(pageKey)
	rows := make([]models.PageContent, 0, len(values))
	for element, value := range values {
		rows = append(rows, models.PageContent{PageKey: pageKey, ElementKey: element, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ElementKey < rows[j].ElementKey })
	return rows
}
