// internal/recommendation/scoring/normalize.go
package scoring

import "strings"

// integrationSynonyms maps spellings seen in tasks and workflow definitions
// to one canonical integration name.
var integrationSynonyms = map[string]string{
	"postgres":        "postgresql",
	"pg":              "postgresql",
	"mongo":           "mongodb",
	"drive":           "google drive",
	"gdrive":          "google drive",
	"googledrive":     "google drive",
	"sheets":          "google sheets",
	"gsheets":         "google sheets",
	"googlesheets":    "google sheets",
	"http":            "http request",
	"httprequest":     "http request",
	"http-request":    "http request",
	"rest":            "http request",
	"rest api":        "http request",
	"gmail":           "gmail",
	"google mail":     "gmail",
	"teams":           "microsoft teams",
	"ms teams":        "microsoft teams",
	"msteams":         "microsoft teams",
	"excel":           "microsoft excel",
	"ms excel":        "microsoft excel",
	"outlook":         "microsoft outlook",
	"ms outlook":      "microsoft outlook",
	"openai":          "openai",
	"chatgpt":         "openai",
	"gpt":             "openai",
	"mysql db":        "mysql",
	"sftp":            "ftp",
	"s3":              "aws s3",
	"amazon s3":       "aws s3",
	"hubspot crm":     "hubspot",
	"salesforce crm":  "salesforce",
	"webhooks":        "webhook",
	"slack api":       "slack",
	"telegram bot":    "telegram",
	"google calendar": "google calendar",
	"gcal":            "google calendar",
}

// Normalize lower-cases an integration name, folds separators and maps known
// synonyms to their canonical form.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "n8n-nodes-base.")
	n = strings.NewReplacer("_", " ", ".", " ").Replace(n)
	n = strings.Join(strings.Fields(n), " ")

	if canonical, ok := integrationSynonyms[n]; ok {
		return canonical
	}
	if canonical, ok := integrationSynonyms[strings.ReplaceAll(n, " ", "")]; ok {
		return canonical
	}
	if canonical, ok := integrationSynonyms[strings.ReplaceAll(n, "-", "")]; ok {
		return canonical
	}
	return n
}

// NormalizeAll returns the distinct normalized names in input order.
func NormalizeAll(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := Normalize(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
