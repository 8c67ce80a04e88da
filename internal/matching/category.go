package matching

import "strings"

// ideaCategories is the fixed vocabulary for classifying idea descriptions.
// Order matters: the first keyword found in the text wins. The list mixes
// Russian domain words with English buzzwords as originally authored;
// reordering or "cleaning it up" silently changes which ideas count as
// similar.
var ideaCategories = []string{
	"образование",
	"доставка",
	"финансы",
	"здоровье",
	"edtech",
	"fintech",
	"healthtech",
	"foodtech",
	"transport",
	"logistics",
	"ecommerce",
	"social",
	"entertainment",
	"productivity",
}

// CategoryOf classifies a free-text idea description by keyword lookup,
// returning the first category whose keyword appears as a substring of the
// lowercased text. The second return value is false for empty text or when
// no keyword matches.
func CategoryOf(ideaText string) (string, bool) {
	text := strings.ToLower(ideaText)
	if text == "" {
		return "", false
	}

	for _, category := range ideaCategories {
		if strings.Contains(text, category) {
			return category, true
		}
	}

	return "", false
}
