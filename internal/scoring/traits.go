// internal/scoring/traits.go
package scoring

import (
	"math"
	"strings"

	"bizpath-workers/internal/models"
)

const neutral = 0.5

// structurePreliminary scores how much structure each answer asks for. The trait is
// the inverse: a high structurePreference means the person prefers working freely.
var structurePreliminary = map[string]float64{
	"clear-steps":     0.9,
	"some-structure":  0.7,
	"mostly-flexible": 0.3,
	"total-freedom":   0.1,
}

var traitDerivations = map[models.TraitName]func(*models.QuizResponse) float64{
	models.TraitRiskTolerance:           RiskTolerance,
	models.TraitSelfMotivation:          SelfMotivation,
	models.TraitTechComfort:             TechComfort,
	models.TraitCommunicationConfidence: CommunicationConfidence,
	models.TraitCreativity:              Creativity,
	models.TraitStructurePreference:     StructurePreference,
	models.TraitConsistency:             Consistency,
	models.TraitFeedbackResilience:      FeedbackResilience,
	models.TraitSocialComfort:           SocialComfort,
	models.TraitOrganization:            Organization,
	models.TraitAdaptability:            Adaptability,
	models.TraitCompetitiveness:         Competitiveness,
}

// NormalizeTraits derives every known trait from q. A nil response yields all-neutral
// scores.
func NormalizeTraits(q *models.QuizResponse) models.TraitScoreSet {
	if q == nil {
		q = &models.QuizResponse{}
	}
	out := make(models.TraitScoreSet, len(traitDerivations))
	for name, derive := range traitDerivations {
		out[name] = clamp01(derive(q))
	}
	return out
}

// DeriveTrait computes a single trait. Unknown names are neutral.
func DeriveTrait(name models.TraitName, q *models.QuizResponse) float64 {
	derive, ok := traitDerivations[name]
	if !ok {
		return neutral
	}
	if q == nil {
		q = &models.QuizResponse{}
	}
	return clamp01(derive(q))
}

func RiskTolerance(q *models.QuizResponse) float64  { return NormalizeLikert(q.RiskComfortLevel) }
func SelfMotivation(q *models.QuizResponse) float64 { return NormalizeLikert(q.SelfMotivationLevel) }
func TechComfort(q *models.QuizResponse) float64    { return NormalizeLikert(q.TechSkillsRating) }
func Creativity(q *models.QuizResponse) float64     { return NormalizeLikert(q.CreativeWorkEnjoyment) }
func Consistency(q *models.QuizResponse) float64    { return NormalizeLikert(q.LongTermConsistency) }
func Organization(q *models.QuizResponse) float64   { return NormalizeLikert(q.OrganizationLevel) }

func Competitiveness(q *models.QuizResponse) float64 {
	return NormalizeLikert(q.CompetitivenessLevel)
}

func CommunicationConfidence(q *models.QuizResponse) float64 {
	return strongest(likertSignal(q.DirectCommunicationEnjoyment), flagSignal(q.ClientCallsComfort))
}

func SocialComfort(q *models.QuizResponse) float64 {
	return strongest(likertSignal(q.DirectCommunicationEnjoyment), likertSignal(q.BrandFaceComfort))
}

func FeedbackResilience(q *models.QuizResponse) float64 {
	return strongest(likertSignal(q.FeedbackRejectionResponse), likertSignal(q.DiscouragementResilience))
}

func Adaptability(q *models.QuizResponse) float64 {
	return strongest(likertSignal(q.TrialErrorComfort), likertSignal(q.UncertaintyHandling))
}

func StructurePreference(q *models.QuizResponse) float64 {
	answer, ok := q.WorkStructurePreference.Get()
	if !ok {
		return neutral
	}
	preliminary, ok := structurePreliminary[normalizeChoice(answer)]
	if !ok {
		return neutral
	}
	return clamp01(1 - preliminary)
}

// NormalizeLikert maps 1..5 onto 0..1. Out-of-range answers are clamped.
func NormalizeLikert(l models.Likert) float64 {
	return likertSignal(l).or(neutral)
}

// FlagValue scores a yes/no style answer: yes is 1, no is 0, hedged answers and
// anything unrecognised are 0.5.
func FlagValue(f models.YesNo) float64 {
	return flagSignal(f).or(neutral)
}

// signal is one normalized answer that may be missing.
type signal struct {
	value float64
	ok    bool
}

func (s signal) or(def float64) float64 {
	if !s.ok {
		return def
	}
	return s.value
}

func likertSignal(l models.Likert) signal {
	raw, ok := l.Get()
	if !ok {
		return signal{}
	}
	// clamp before subtracting so extreme ints cannot wrap
	raw = min(max(raw, models.LikertMin), models.LikertMax)
	span := float64(models.LikertMax - models.LikertMin)
	return signal{value: float64(raw-models.LikertMin) / span, ok: true}
}

func flagSignal(f models.YesNo) signal {
	raw, ok := f.Get()
	if !ok {
		return signal{}
	}
	switch normalizeChoice(raw) {
	case "yes", "true", "y":
		return signal{value: 1, ok: true}
	case "no", "false", "n":
		return signal{value: 0, ok: true}
	case "maybe", "unsure", "some", "sometimes", "not-sure":
		return signal{value: neutral, ok: true}
	}
	return signal{}
}

// strongest returns the highest answered signal. One strong signal is enough evidence
// for the trait; if nothing was answered the result is neutral.
func strongest(signals ...signal) float64 {
	best := signal{}
	for _, s := range signals {
		if s.ok && (!best.ok || s.value > best.value) {
			best = s
		}
	}
	return best.or(neutral)
}

func normalizeChoice(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(strings.ReplaceAll(s, "_", "-"), " ", "-")
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return neutral
	}
	return math.Max(0, math.Min(1, v))
}
