// internal/analysis/detector/categories.go
package detector

import "strings"

// Categories that only the context-aware detector produces.
const (
	CategoryHR      = "hr"
	CategoryFinance = "finance"
)

const (
	LangDE = "de"
	LangEN = "en"
)

var categoryNames = map[string]map[string]string{
	LangDE: {
		CategoryAdministrative: "Verwaltung",
		CategoryCommunication:  "Kommunikation",
		CategoryTechnical:      "Technik",
		CategoryAnalytical:     "Analyse",
		CategoryCreative:       "Kreativ",
		CategoryManagement:     "Management",
		CategoryPhysical:       "Physisch",
		CategoryRoutine:        "Routine",
		CategoryGeneral:        "Allgemein",
		CategoryHR:             "Personalwesen",
		CategoryFinance:        "Finanzen",
	},
	LangEN: {
		CategoryAdministrative: "Administration",
		CategoryCommunication:  "Communication",
		CategoryTechnical:      "Technology",
		CategoryAnalytical:     "Analysis",
		CategoryCreative:       "Creative",
		CategoryManagement:     "Management",
		CategoryPhysical:       "Physical",
		CategoryRoutine:        "Routine",
		CategoryGeneral:        "General",
		CategoryHR:             "Human Resources",
		CategoryFinance:        "Finance",
	},
}

// canonical maps every tag and display name, lower-cased, to its tag.
var canonical = func() map[string]string {
	m := make(map[string]string)
	for _, names := range categoryNames {
		for tag, name := range names {
			m[tag] = tag
			m[strings.ToLower(name)] = tag
		}
	}
	return m
}()

// CategoryName is the display name of a category tag. Unknown tags are
// returned unchanged; any lang other than "en" yields German names.
func CategoryName(tag, lang string) string {
	names := categoryNames[LangDE]
	if lang == LangEN {
		names = categoryNames[LangEN]
	}
	if name, ok := names[tag]; ok {
		return name
	}
	return tag
}

// CanonicalCategory maps a tag or a display name in either language to its
// tag. Names outside the vocabulary come back trimmed and lower-cased.
func CanonicalCategory(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if tag, ok := canonical[lower]; ok {
		return tag
	}
	return lower
}
