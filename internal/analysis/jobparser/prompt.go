// internal/analysis/jobparser/prompt.go
package jobparser

import (
	"fmt"
	"strings"
)

const promptDE = `Du analysierst eine Stellenbeschreibung auf Automatisierungspotenzial.
Zerlege den Text in einzelne Aufgaben. Liefere fuer jede Aufgabe:
text, automationPotential (0-100), reasoning, optional category, aiTools,
subtasks (id, title, description, automationPotential, estimatedTime in Minuten,
priority low|medium|high|critical, complexity low|medium|high, systems, risks,
opportunities, dependencies) und businessCase (manualHours, automatedHours,
savedHours = manualHours - automatedHours, setupCostHours, setupCostMoney, roi,
paybackPeriodYears, hourlyRateEmployee, hourlyRateFreelancer,
employmentType employee|freelancer, reasoning, automationPotential).
Antworte ausschliesslich mit JSON der Form {"tasks": [...]}.`

const promptEN = `You analyze a job description for automation potential.
Split the text into individual tasks. For every task return:
text, automationPotential (0-100), reasoning, optional category, aiTools,
subtasks (id, title, description, automationPotential, estimatedTime in minutes,
priority low|medium|high|critical, complexity low|medium|high, systems, risks,
opportunities, dependencies) and businessCase (manualHours, automatedHours,
savedHours = manualHours - automatedHours, setupCostHours, setupCostMoney, roi,
paybackPeriodYears, hourlyRateEmployee, hourlyRateFreelancer,
employmentType employee|freelancer, reasoning, automationPotential).
Reply with JSON only, shaped {"tasks": [...]}.`

// BuildPrompt asks for every task, subtask and business case in one round trip.
func BuildPrompt(jobText, jobTitle, lang string) string {
	var b strings.Builder
	if lang == LangEN {
		b.WriteString(promptEN)
		if jobTitle != "" {
			fmt.Fprintf(&b, "\n\nJob title: %s", jobTitle)
		}
		b.WriteString("\n\nJob description:\n")
	} else {
		b.WriteString(promptDE)
		if jobTitle != "" {
			fmt.Fprintf(&b, "\n\nStellentitel: %s", jobTitle)
		}
		b.WriteString("\n\nStellenbeschreibung:\n")
	}
	b.WriteString(jobText)
	return b.String()
}
