// internal/analysis/detector/keywords.go
package detector

type keywordSet struct {
	tag      string
	keywords []string
}

// industries is ordered by priority: the first matching entry wins.
var industries = []keywordSet{
	{IndustryHR, []string{
		"personal", "mitarbeiter", "recruiting", "recruiter", "bewerb", "human resources",
		"personalwesen", "personalabteilung", "onboarding", "lohnabrechnung", "payroll",
	}},
	{IndustryHealthcare, []string{
		"patient", "pflege", "arzt", "ärzt", "klinik", "krankenhaus", "medizin", "health",
		"therapie", "hospital", "nurse",
	}},
	{IndustryFinance, []string{
		"buchhaltung", "finanz", "accounting", "rechnungswesen", "controlling", "steuer",
		"bilanz", "bank", "finance", "kredit", "audit",
	}},
	{IndustryIT, []string{
		"software", "entwickl", "programmier", "developer", "devops", "server", "datenbank",
		"database", "informatik", "cloud", "backend", "frontend", "it-abteilung", "it-support",
	}},
	{IndustryMarketing, []string{
		"marketing", "kampagne", "campaign", "social media", "werbung", "brand", "newsletter",
		"seo-", "suchmaschinenoptimierung", "content-marketing",
	}},
	{IndustryEducation, []string{
		"lehrer", "schule", "unterricht", "schüler", "education", "teacher", "dozent",
		"studierende", "lehrplan", "kurs",
	}},
	{IndustryLogistics, []string{
		"logistik", "lager", "versand", "spedition", "logistics", "warehouse", "shipping",
		"lieferung", "fuhrpark", "kommissionier",
	}},
	{IndustryProduction, []string{
		"produktion", "fertigung", "manufacturing", "maschine", "montage",
		"qualitätskontrolle", "production", "werkhalle", "schicht",
	}},
	{IndustryRetail, []string{
		"einzelhandel", "verkauf", "kasse", "retail", "filiale", "verkäufer", "sortiment",
		"e-commerce", "onlineshop",
	}},
}

// hrSpecific are the high-precision phrases that must hit before a text is
// tagged as human resources. Generic words such as "personal" or
// "mitarbeiter" appear in almost every job description.
var hrSpecific = []string{
	"personalwesen", "personalabteilung", "human resources", "recruiting", "recruiter",
	"bewerbermanagement", "bewerbungsgespräch", "personalreferent", "personalsachbearbeit",
	"hr-manager", "hr manager", "talent acquisition", "lohnabrechnung", "payroll",
}

var administrativeFallback = []string{
	"verwaltung", "büro", "administration", "sekretariat", "office", "sachbearbeit",
	"ablage", "formular", "akten",
}

// categories is ordered: the first matching category wins.
var categories = []keywordSet{
	{CategoryAdministrative, []string{
		"verwaltung", "ablage", "formular", "dokumentation", "akten", "archiv",
		"dateneingabe", "data entry", "administration", "büro", "rechnung", "invoice",
		"buchung", "termin",
	}},
	{CategoryCommunication, []string{
		"kommunikation", "e-mail", "email", "telefon", "anruf", "korrespondenz", "meeting",
		"besprechung", "kundenkontakt", "communication", "chat", "anfragen",
	}},
	{CategoryTechnical, []string{
		"programmier", "entwickl", "software", "code", "server", "debug", "deploy",
		"technisch", "technical", "integration", "schnittstelle",
	}},
	{CategoryAnalytical, []string{
		"analyse", "analys", "auswert", "statistik", "kennzahl", "controlling", "analysis",
		"analytics", "forecast", "prognose",
	}},
	{CategoryCreative, []string{
		"design", "gestalt", "kreativ", "creative", "texte schreiben", "konzept", "idee",
		"content",
	}},
	{CategoryManagement, []string{
		"führung", "leitung", "management", "planung", "koordination", "strategie",
		"verantwortung", "projektleitung", "leadership",
	}},
	{CategoryPhysical, []string{
		"montage", "lager", "reinigung", "transport", "handwerk", "reparatur",
		"kommissionier", "physisch", "physical", "assembly", "warehouse", "cleaning", "repair",
	}},
	{CategoryRoutine, []string{
		"routine", "wiederkehrend", "regelmäßig", "täglich", "standard", "repetitive",
		"recurring", "daily",
	}},
}

// AutomationPositive are signals that raise the automation score.
var AutomationPositive = []string{
	"daten", "data", "bericht", "report", "routine", "automat", "system", "software",
	"excel", "tabelle", "spreadsheet", "erfassung", "wiederkehrend", "repetitive",
	"digital", "workflow",
}

// AutomationNegative are signals that lower the automation score.
var AutomationNegative = []string{
	"kreativ", "creative", "beratung", "consult", "entscheid", "decision", "strategie",
	"strategy", "führung", "leadership", "physisch", "physical", "manuell", "manual",
	"verhandl", "negotiat", "empathie", "empathy",
}
