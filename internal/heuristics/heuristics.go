// internal/heuristics/heuristics.go
package heuristics

// Config holds every tunable number used by the analysis and recommendation
// heuristics. Algorithms take a *Config so the numbers can be exercised in
// tests without touching the algorithm shape.
type Config struct {
	Automation   AutomationConfig
	Labels       LabelConfig
	Classifier   ClassifierConfig
	Parser       ParserConfig
	Aggregator   AggregatorConfig
	Solution     SolutionConfig
	Similarity   SimilarityConfig
	MMR          MMRConfig
	Recommending RecommendingConfig
}

// AutomationConfig drives the keyword automation scorer.
type AutomationConfig struct {
	BaseScores       map[string]int
	DefaultBaseScore int
	PositiveDelta    int
	NegativeDelta    int
	MinScore         int
	MaxScore         int
}

// LabelConfig holds the score thresholds shared by label and complexity derivation.
type LabelConfig struct {
	AutomatableMin int // score >= this -> Automatisierbar / low complexity
	PartialMin     int // score >= this -> Teilweise Automatisierbar / medium complexity
}

type ClassifierConfig struct {
	LocalConfidence    float64
	ExternalConfidence float64
}

type ParserConfig struct {
	FallbackPotential   int
	FallbackConfidence  int // percent
	LowComplexityMin    int // business case potential >= this -> low
	MediumComplexityMin int
	JobTitleMaxLength   int
}

type AggregatorConfig struct {
	HighBandMin          int
	MediumBandMin        int
	MaxRecommendations   int
	MaxIndustryTools     int
	MaxReferencedAITools int
}

// SolutionConfig holds the additive weights of the solution relevance scorer.
type SolutionConfig struct {
	KeywordMatchWeight  float64
	KeywordMatchCap     float64
	IntegrationWeight   float64
	IntegrationCap      float64
	AIGeneratedBonus    float64
	VerifiedBonus       float64
	RatingBonus         float64
	RatingThreshold     float64
	PopularityBonus     float64
	PopularityThreshold int
	DownloadsBonus      float64
	DownloadsThreshold  int
	ComplexityBonus     float64
	CategoryBonus       float64
	MinKeywordLength    int

	ConfidenceBase           float64
	KeywordConfidence        float64
	IntegrationConfidence    float64
	AIGeneratedConfidence    float64
	VerifiedConfidence       float64
	RatingConfidence         float64
	PopularityConfidence     float64
	DownloadsConfidence      float64
	ComplexityConfidence     float64
	CategoryConfidence       float64
	LowComplexityMaxWords    int
	MediumComplexityMaxWords int
}

// SimilarityConfig weights the composite solution similarity (sums to 1.0).
type SimilarityConfig struct {
	CategoryWeight    float64
	IntegrationWeight float64
	ComplexityWeight  float64
	SourceWeight      float64
}

type MMRConfig struct {
	Lambda float64
}

type RecommendingConfig struct {
	MinScore      float64
	MaxCandidates int
	DefaultTopK   int
}

// Default returns the production heuristics.
func Default() *Config {
	return &Config{
		Automation: AutomationConfig{
			BaseScores: map[string]int{
				"administrative": 85,
				"routine":        90,
				"technical":      80,
				"analytical":     75,
				"communication":  40,
				"creative":       30,
				"management":     25,
				"physical":       20,
				"general":        50,
			},
			DefaultBaseScore: 50,
			PositiveDelta:    5,
			NegativeDelta:    8,
			MinScore:         0,
			MaxScore:         100,
		},
		Labels: LabelConfig{
			AutomatableMin: 70,
			PartialMin:     30,
		},
		Classifier: ClassifierConfig{
			LocalConfidence:    0.7,
			ExternalConfidence: 0.9,
		},
		Parser: ParserConfig{
			FallbackPotential:   50,
			FallbackConfidence:  30,
			LowComplexityMin:    85,
			MediumComplexityMin: 60,
			JobTitleMaxLength:   120,
		},
		Aggregator: AggregatorConfig{
			HighBandMin:          75,
			MediumBandMin:        50,
			MaxRecommendations:   8,
			MaxIndustryTools:     3,
			MaxReferencedAITools: 3,
		},
		Solution: SolutionConfig{
			KeywordMatchWeight:  0.2,
			KeywordMatchCap:     1.0,
			IntegrationWeight:   0.1,
			IntegrationCap:      0.3,
			AIGeneratedBonus:    0.2,
			VerifiedBonus:       0.15,
			RatingBonus:         0.1,
			RatingThreshold:     4,
			PopularityBonus:     0.1,
			PopularityThreshold: 100,
			DownloadsBonus:      0.1,
			DownloadsThreshold:  50,
			ComplexityBonus:     0.1,
			CategoryBonus:       0.15,
			MinKeywordLength:    5,

			ConfidenceBase:           0.5,
			KeywordConfidence:        0.1,
			IntegrationConfidence:    0.15,
			AIGeneratedConfidence:    0.05,
			VerifiedConfidence:       0.1,
			RatingConfidence:         0.05,
			PopularityConfidence:     0.05,
			DownloadsConfidence:      0.05,
			ComplexityConfidence:     0.05,
			CategoryConfidence:       0.1,
			LowComplexityMaxWords:    15,
			MediumComplexityMaxWords: 40,
		},
		Similarity: SimilarityConfig{
			CategoryWeight:    0.3,
			IntegrationWeight: 0.4,
			ComplexityWeight:  0.2,
			SourceWeight:      0.1,
		},
		MMR: MMRConfig{
			Lambda: 0.7,
		},
		Recommending: RecommendingConfig{
			MinScore:      0.1,
			MaxCandidates: 1000,
			DefaultTopK:   5,
		},
	}
}
