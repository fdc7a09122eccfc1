// internal/analysis/roi/texts.go
package roi

import "automation-advisor/internal/analysis/detector"

type texts struct {
	noTasks       string
	summaryHigh   string
	summaryMedium string
	summaryLow    string

	bandHigh   string
	bandMedium string
	bandLow    string

	aiToolsPrefix string
	general       []string
	industryTools map[string][]string
}

var localized = map[string]texts{
	"de": {
		noTasks:       "Es konnten keine Aufgaben aus der Beschreibung analysiert werden.",
		summaryHigh:   "Hohes Automatisierungspotenzial: %d%% über %d Aufgaben. Ein Großteil der Tätigkeiten lässt sich mit heutigen Werkzeugen automatisieren.",
		summaryMedium: "Mittleres Automatisierungspotenzial: %d%% über %d Aufgaben. Viele Routineanteile lassen sich automatisieren, Kernaufgaben bleiben beim Menschen.",
		summaryLow:    "Geringes Automatisierungspotenzial: %d%% über %d Aufgaben. Die Tätigkeit ist überwiegend von menschlicher Arbeit geprägt.",

		bandHigh:   "Priorisieren Sie eine umfassende Automatisierung der Routineaufgaben, der Aufwand amortisiert sich schnell.",
		bandMedium: "Starten Sie mit der Automatisierung einzelner, klar abgegrenzter Teilaufgaben.",
		bandLow:    "Nutzen Sie Automatisierung gezielt zur Unterstützung, nicht als Ersatz menschlicher Arbeit.",

		aiToolsPrefix: "Empfohlene KI-Tools aus der Analyse: ",
		general: []string{
			"Dokumentieren Sie bestehende Abläufe, bevor Sie sie automatisieren.",
			"Beginnen Sie mit einem Pilotprojekt und messen Sie die eingesparte Zeit.",
			"Beziehen Sie die betroffenen Mitarbeitenden früh in die Automatisierung ein.",
		},
		industryTools: map[string][]string{
			detector.IndustryIT: {
				"GitHub Copilot zur Unterstützung bei der Softwareentwicklung",
				"CI/CD-Pipelines für automatisierte Tests und Deployments",
				"Monitoring mit automatischer Alarmierung",
			},
			detector.IndustryFinance: {
				"Automatisierte Belegerfassung mit OCR",
				"RPA für wiederkehrende Buchungsvorgänge",
				"KI-gestützte Anomalieerkennung im Zahlungsverkehr",
			},
			detector.IndustryHealthcare: {
				"Spracherkennung für die medizinische Dokumentation",
				"Automatisierte Terminplanung für Patienten",
				"KI-gestützte Auswertung von Befunden",
			},
			detector.IndustryMarketing: {
				"KI-Textgeneratoren für Content-Erstellung",
				"Marketing-Automation für Kampagnen und Newsletter",
				"Automatisierte Auswertung von Social-Media-Kennzahlen",
			},
			detector.IndustryHR: {
				"Bewerbermanagementsysteme mit automatischer Vorauswahl",
				"Digitale Onboarding-Workflows",
				"Automatisierte Lohnabrechnung",
			},
			detector.IndustryProduction: {
				"Predictive Maintenance für Maschinen",
				"Kamerabasierte Qualitätskontrolle",
				"Automatisierte Produktionsplanung",
			},
			detector.IndustryRetail: {
				"Automatisierte Bestandsführung und Nachbestellung",
				"Chatbots für Kundenanfragen",
				"Dynamische Preisgestaltung",
			},
			detector.IndustryEducation: {
				"Lernplattformen mit automatischer Auswertung",
				"KI-gestützte Erstellung von Lernmaterialien",
				"Automatisierte Kursverwaltung",
			},
			detector.IndustryLogistics: {
				"Automatisierte Routenplanung",
				"Sendungsverfolgung mit automatischen Benachrichtigungen",
				"Lagerverwaltungssysteme mit Scannerintegration",
			},
		},
	},
	"en": {
		noTasks:       "No tasks could be analyzed from the description.",
		summaryHigh:   "High automation potential: %d%% across %d tasks. Most of the work can be automated with today's tools.",
		summaryMedium: "Medium automation potential: %d%% across %d tasks. Many routine parts can be automated while core tasks stay with people.",
		summaryLow:    "Low automation potential: %d%% across %d tasks. The role is dominated by human work.",

		bandHigh:   "Prioritize automating the routine tasks end to end; the effort pays back quickly.",
		bandMedium: "Start by automating individual, well-bounded subtasks.",
		bandLow:    "Use automation selectively to support people rather than replace them.",

		aiToolsPrefix: "Recommended AI tools from the analysis: ",
		general: []string{
			"Document existing processes before automating them.",
			"Start with a pilot project and measure the time saved.",
			"Involve the affected employees early in the automation effort.",
		},
		industryTools: map[string][]string{
			detector.IndustryIT: {
				"GitHub Copilot to assist software development",
				"CI/CD pipelines for automated tests and deployments",
				"Monitoring with automatic alerting",
			},
			detector.IndustryFinance: {
				"Automated receipt capture with OCR",
				"RPA for recurring booking operations",
				"AI based anomaly detection in payments",
			},
			detector.IndustryHealthcare: {
				"Speech recognition for medical documentation",
				"Automated patient scheduling",
				"AI assisted analysis of findings",
			},
			detector.IndustryMarketing: {
				"AI text generators for content creation",
				"Marketing automation for campaigns and newsletters",
				"Automated social media reporting",
			},
			detector.IndustryHR: {
				"Applicant tracking systems with automatic screening",
				"Digital onboarding workflows",
				"Automated payroll",
			},
			detector.IndustryProduction: {
				"Predictive maintenance for machines",
				"Camera based quality control",
				"Automated production planning",
			},
			detector.IndustryRetail: {
				"Automated inventory and reordering",
				"Chatbots for customer inquiries",
				"Dynamic pricing",
			},
			detector.IndustryEducation: {
				"Learning platforms with automatic grading",
				"AI assisted creation of course material",
				"Automated course administration",
			},
			detector.IndustryLogistics: {
				"Automated route planning",
				"Shipment tracking with automatic notifications",
				"Warehouse management systems with scanner integration",
			},
		},
	},
}

func textsFor(lang string) texts {
	if t, ok := localized[lang]; ok {
		return t
	}
	return localized["de"]
}
