// internal/scoring/fit.go
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"bizpath-workers/internal/models"
)

// Weights splits the final score between trait alignment, resource fit and flag
// preferences. Components must be non-negative and sum to 1.
type Weights struct {
	Trait      float64 `json:"trait" mapstructure:"trait"`
	Resource   float64 `json:"resource" mapstructure:"resource"`
	Preference float64 `json:"preference" mapstructure:"preference"`
}

var DefaultWeights = Weights{Trait: 0.55, Resource: 0.30, Preference: 0.15}

const weightTolerance = 1e-6

var ErrInvalidWeights = errors.New("invalid scoring weights")

func (w Weights) Validate() error {
	components := []struct {
		name  string
		value float64
	}{
		{"trait", w.Trait},
		{"resource", w.Resource},
		{"preference", w.Preference},
	}
	for _, c := range components {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, c.name, c.value)
		}
	}
	sum := w.Trait + w.Resource + w.Preference
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Resource sub-weights. Time and money dominate; patience and income ambition refine.
const (
	timeWeight     = 0.35
	budgetWeight   = 0.35
	timelineWeight = 0.15
	incomeWeight   = 0.15
)

// incomePatienceMonths is how long each firstIncomeTimeline answer is willing to wait.
var incomePatienceMonths = map[string]float64{
	"under-1-month": 1,
	"1-3-months":    3,
	"3-6-months":    6,
	"no-rush":       12,
}

// Scorer computes fit scores. It holds only immutable weights and is safe for
// concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

// NewDefaultScorer returns a Scorer using DefaultWeights.
func NewDefaultScorer() *Scorer {
	return &Scorer{weights: DefaultWeights}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the 0-100 fit of one catalog entry for q.
func (s *Scorer) Score(q *models.QuizResponse, def models.BusinessModelDefinition) (int, models.FitBreakdown) {
	if q == nil {
		q = &models.QuizResponse{}
	}
	return s.score(q, NormalizeTraits(q), def)
}

func (s *Scorer) score(q *models.QuizResponse, traits models.TraitScoreSet, def models.BusinessModelDefinition) (int, models.FitBreakdown) {
	traitFit, degraded := TraitFit(traits, def.RequiredTraits)
	res := resourceFit(q, def.Requirements)
	pref := PreferenceFit(q, def.RequiredFlags)

	total := s.weights.Trait*traitFit + s.weights.Resource*res.total() + s.weights.Preference*pref

	return percent(total), models.FitBreakdown{
		TraitFit:      percent(traitFit),
		ResourceFit:   percent(res.total()),
		PreferenceFit: percent(pref),
		TimeFit:       percent(res.time),
		BudgetFit:     percent(res.budget),
		TimelineFit:   percent(res.timeline),
		IncomeFit:     percent(res.income),
		Degraded:      degraded,
	}
}

// TraitFit is the weighted mean alignment of traits against the required profile.
// Entries without a usable profile get the neutral score and degraded is true.
func TraitFit(traits models.TraitScoreSet, required map[models.TraitName]models.TraitRequirement) (fit float64, degraded bool) {
	var sum, totalWeight float64
	for _, name := range sortedTraitNames(required) {
		req := required[name]
		w := req.Weight
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			continue
		}
		sum += w * Alignment(traits.Get(name), req)
		totalWeight += w
	}
	if totalWeight == 0 {
		return neutral, true
	}
	return clamp01(sum / totalWeight), false
}

// Alignment scores how well a trait value meets one requirement. With a minimum the
// trait stops limiting the fit once it reaches that level.
func Alignment(value float64, req models.TraitRequirement) float64 {
	v := clamp01(value)
	if req.Direction == models.DirectionLow {
		v = 1 - v
	}
	minimum := req.Minimum
	if math.IsNaN(minimum) || minimum <= 0 {
		return v
	}
	return clamp01(v / math.Min(minimum, 1))
}

// PreferenceFit averages the required flag answers. Entries with no flags fit fully.
func PreferenceFit(q *models.QuizResponse, flags []string) float64 {
	if len(flags) == 0 {
		return 1
	}
	var sum float64
	for _, name := range flags {
		sum += FlagValue(q.Flag(name))
	}
	return clamp01(sum / float64(len(flags)))
}

type resourceBreakdown struct {
	time, budget, timeline, income float64
}

func (r resourceBreakdown) total() float64 {
	return clamp01(timeWeight*r.time + budgetWeight*r.budget + timelineWeight*r.timeline + incomeWeight*r.income)
}

func resourceFit(q *models.QuizResponse, req models.ResourceProfile) resourceBreakdown {
	return resourceBreakdown{
		time:     coverage(q.WeeklyTimeCommitment, req.MinWeeklyHours),
		budget:   coverage(q.UpfrontInvestment, req.MinBudget),
		timeline: timelineFit(q.FirstIncomeTimeline, req.MonthsToFirstIncome),
		income:   incomeFit(q.SuccessIncomeGoal, req.MonthlyIncomePotential),
	}
}

// coverage is the share of a requirement the answer covers, capped at 1.
func coverage(answer models.Amount, required float64) float64 {
	if math.IsNaN(required) || required <= 0 {
		return 1
	}
	have, ok := answer.Get()
	if !ok || math.IsNaN(have) {
		return neutral
	}
	return ratio(math.Max(have, 0), required)
}

func timelineFit(answer models.Choice, monthsToIncome float64) float64 {
	if math.IsNaN(monthsToIncome) || monthsToIncome <= 0 {
		return 1
	}
	raw, ok := answer.Get()
	if !ok {
		return neutral
	}
	patience, ok := incomePatienceMonths[normalizeChoice(raw)]
	if !ok {
		return neutral
	}
	return ratio(patience, monthsToIncome)
}

func incomeFit(goal models.Amount, potential float64) float64 {
	want, ok := goal.Get()
	if !ok || math.IsNaN(want) {
		return neutral
	}
	if want <= 0 {
		return 1
	}
	if math.IsNaN(potential) || potential <= 0 {
		return neutral
	}
	return ratio(potential, want)
}

func ratio(have, need float64) float64 {
	if math.IsInf(have, 1) {
		return 1
	}
	return clamp01(have / need)
}

func percent(v float64) int {
	return int(math.Round(clamp01(v) * 100))
}

func sortedTraitNames(required map[models.TraitName]models.TraitRequirement) []models.TraitName {
	names := make([]models.TraitName, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
