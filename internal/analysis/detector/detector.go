// internal/analysis/detector/detector.go
package detector

import "strings"

const (
	IndustryIT         = "it"
	IndustryFinance    = "finance"
	IndustryHealthcare = "healthcare"
	IndustryMarketing  = "marketing"
	IndustryHR         = "hr"
	IndustryProduction = "production"
	IndustryRetail     = "retail"
	IndustryEducation  = "education"
	IndustryLogistics  = "logistics"

	IndustryAdministration = "administration"
	IndustryGeneral        = "general"
)

const (
	CategoryAdministrative = "administrative"
	CategoryCommunication  = "communication"
	CategoryTechnical      = "technical"
	CategoryAnalytical     = "analytical"
	CategoryCreative       = "creative"
	CategoryManagement     = "management"
	CategoryPhysical       = "physical"
	CategoryRoutine        = "routine"
	CategoryGeneral        = "general"
)

// DetectIndustry maps free text to an industry tag. Earlier industries win.
func DetectIndustry(text string) string {
	lower := strings.ToLower(text)

	for _, set := range industries {
		keywords := set.keywords
		if set.tag == IndustryHR {
			keywords = hrSpecific
		}
		if ContainsAny(lower, keywords) {
			return set.tag
		}
	}

	if ContainsAny(lower, administrativeFallback) {
		return IndustryAdministration
	}
	return IndustryGeneral
}

// DetectTaskCategory maps free text to a task category tag.
func DetectTaskCategory(text string) string {
	lower := strings.ToLower(text)
	for _, set := range categories {
		if ContainsAny(lower, set.keywords) {
			return set.tag
		}
	}
	return CategoryGeneral
}

// IsHRTitle reports whether a job title names a human-resources position.
// Unlike DetectIndustry it accepts the generic "personal" stem since a title
// is short and specific.
func IsHRTitle(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "personal") || ContainsAny(lower, hrSpecific) ||
		strings.HasPrefix(lower, "hr ") || strings.Contains(lower, " hr ")
}

// ContainsAny reports whether any keyword is a substring of the lower-cased text.
func ContainsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CountHits returns how many distinct keywords occur in the lower-cased text.
func CountHits(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// Industries lists every industry tag with a keyword table, in priority order.
func Industries() []string {
	tags := make([]string, 0, len(industries))
	for _, set := range industries {
		tags = append(tags, set.tag)
	}
	return tags
}
