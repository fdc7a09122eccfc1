// internal/analysis/roi/aggregator_test.go
package roi

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automation-advisor/internal/analysis/detector"
	"automation-advisor/internal/heuristics"
	"automation-advisor/internal/models"
)

func newAggregator() *Aggregator {
	return New(heuristics.Default().Aggregator)
}

func tasksWithScores(industry string, scores ...int) []models.Task {
	tasks := make([]models.Task, len(scores))
	for i, s := range scores {
		tasks[i] = models.Task{Text: fmt.Sprintf("task %d", i), Score: s, Industry: industry}
	}
	return tasks
}

// ==========================
// Potentials
// ==========================

func TestPotentials(t *testing.T) {
	tests := []struct {
		name       string
		scores     []float64
		wantOver   int
		wantActual int
	}{
		{name: "three tasks", scores: []float64{85, 50, 20}, wantOver: 52, wantActual: 52},
		{name: "empty", scores: nil, wantOver: 0, wantActual: 0},
		{name: "all NaN", scores: []float64{math.NaN(), math.NaN()}, wantOver: 0, wantActual: 0},
		{name: "one NaN poisons the mean", scores: []float64{80, math.NaN()}, wantOver: 0, wantActual: 0},
		{name: "single", scores: []float64{100}, wantOver: 100, wantActual: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOver, OverallAutomationPotential(tt.scores))
			assert.Equal(t, tt.wantActual, ActualAutomationPotential(tt.scores))
		})
	}
}

// ==========================
// Aggregate
// ==========================

func TestAggregate_ThreeTasks(t *testing.T) {
	result := newAggregator().Aggregate(tasksWithScores(detector.IndustryGeneral, 85, 50, 20), "text", "de")

	assert.Equal(t, 52, result.TotalScore)
	assert.Equal(t, 52, result.Ratio.Automatisierbar)
	assert.Equal(t, 48, result.Ratio.Mensch)
	assert.Equal(t, "text", result.OriginalText)
	assert.Contains(t, result.Summary, "Mittleres")
	assert.Len(t, result.Tasks, 3)
}

func TestAggregate_Empty(t *testing.T) {
	for _, lang := range []string{"de", "en"} {
		t.Run(lang, func(t *testing.T) {
			result := newAggregator().Aggregate(nil, "text", lang)

			assert.Equal(t, 0, result.TotalScore)
			assert.Equal(t, models.Ratio{Automatisierbar: 0, Mensch: 100}, result.Ratio)
			assert.NotNil(t, result.Tasks)
			assert.Equal(t, localized[lang].noTasks, result.Summary)
			assert.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestAggregate_RatioSumsTo100(t *testing.T) {
	agg := newAggregator()
	for n := 1; n <= 12; n++ {
		scores := make([]int, n)
		for i := range scores {
			scores[i] = (i * 37) % 101
		}
		result := agg.Aggregate(tasksWithScores(detector.IndustryIT, scores...), "", "de")
		assert.Equal(t, 100, result.Ratio.Automatisierbar+result.Ratio.Mensch)
	}
}

func TestSummary_Bands(t *testing.T) {
	agg := newAggregator()

	assert.Contains(t, agg.Summary(75, 2, "de"), "Hohes")
	assert.Contains(t, agg.Summary(50, 2, "de"), "Mittleres")
	assert.Contains(t, agg.Summary(49, 2, "de"), "Geringes")
	assert.Contains(t, agg.Summary(80, 1, "en"), "High automation potential: 80% across 1 tasks")
	assert.Contains(t, agg.Summary(80, 1, "fr"), "Hohes")
}

// ==========================
// Recommendations
// ==========================

func TestRecommendations_ConstructionOrder(t *testing.T) {
	tasks := tasksWithScores(detector.IndustryFinance, 90, 80)
	tasks[0].AITools = []string{"UiPath"}

	recs := newAggregator().Recommendations(tasks, 85, "en")

	en := localized["en"]
	require.Len(t, recs, 8)
	assert.Equal(t, en.bandHigh, recs[0])
	assert.Equal(t, en.industryTools[detector.IndustryFinance], recs[1:4])
	assert.Equal(t, "Recommended AI tools from the analysis: UiPath", recs[4])
	assert.Equal(t, en.general, recs[5:8])
}

func TestRecommendations_NeverMoreThanEight(t *testing.T) {
	tasks := tasksWithScores(detector.IndustryIT, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90)
	for i := range tasks {
		tasks[i].AITools = []string{fmt.Sprintf("Tool%d", i), "Shared"}
	}

	recs := newAggregator().Recommendations(tasks, 90, "de")

	assert.Len(t, recs, 8)
	assert.Contains(t, recs[4], "Shared, Tool0, Tool1")
}

func TestRecommendations_WithoutIndustryOrTools(t *testing.T) {
	recs := newAggregator().Recommendations(tasksWithScores(detector.IndustryGeneral, 10), 10, "de")

	require.Len(t, recs, 4)
	assert.Equal(t, localized["de"].bandLow, recs[0])
}

func TestModalIndustry(t *testing.T) {
	tasks := []models.Task{
		{Industry: detector.IndustryGeneral},
		{Industry: detector.IndustryGeneral},
		{Industry: detector.IndustryRetail},
		{Industry: detector.IndustryHR},
		{Industry: detector.IndustryHR},
		{Industry: detector.IndustryRetail},
	}

	assert.Equal(t, detector.IndustryRetail, ModalIndustry(tasks))
	assert.Equal(t, "", ModalIndustry(nil))
}

func TestTopAITools(t *testing.T) {
	tasks := []models.Task{
		{AITools: []string{"ChatGPT", "DeepL"}},
		{AITools: []string{"deepl", " Zapier "}},
		{AITools: []string{"Zapier", "Make"}},
	}

	assert.Equal(t, []string{"DeepL", "Zapier", "ChatGPT"}, TopAITools(tasks, 3))
	assert.Empty(t, TopAITools(nil, 3))
}
