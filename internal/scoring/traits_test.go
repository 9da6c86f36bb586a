// internal/scoring/traits_test.go
package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"bizpath-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLikert_LinearScaling(t *testing.T) {
	tests := []struct {
		raw      int
		expected float64
	}{
		{1, 0.0},
		{2, 0.25},
		{3, 0.5},
		{4, 0.75},
		{5, 1.0},
	}

	for _, tt := range tests {
		q := &models.QuizResponse{RiskComfortLevel: models.Answered(tt.raw)}
		assert.InDelta(t, tt.expected, RiskTolerance(q), 1e-9, "riskComfortLevel=%d", tt.raw)
		assert.InDelta(t, float64(tt.raw-1)/4, NormalizeLikert(models.Answered(tt.raw)), 1e-9)
	}
}

func TestNormalizeLikert_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeLikert(models.Answered(0)))
	assert.Equal(t, 0.0, NormalizeLikert(models.Answered(-7)))
	assert.Equal(t, 1.0, NormalizeLikert(models.Answered(9)))
	assert.Equal(t, 0.5, NormalizeLikert(models.Unanswered[int]()))
	assert.Equal(t, 0.0, NormalizeLikert(models.Answered(math.MinInt)))
	assert.Equal(t, 1.0, NormalizeLikert(models.Answered(math.MaxInt)))
}

func TestNormalizeTraits_ExtremeJSONAnswersClamp(t *testing.T) {
	for _, tt := range []struct {
		body  string
		trait models.TraitName
		want  float64
	}{
		{`{"techSkillsRating": -1e300}`, models.TraitTechComfort, 0},
		{`{"techSkillsRating": 1e300}`, models.TraitTechComfort, 1},
		{`{"selfMotivationLevel": -9223372036854775808}`, models.TraitSelfMotivation, 0},
		{`{"selfMotivationLevel": "-1e300"}`, models.TraitSelfMotivation, 0},
	} {
		var q models.QuizResponse
		require.NoError(t, json.Unmarshal([]byte(tt.body), &q))
		assert.Equal(t, tt.want, NormalizeTraits(&q)[tt.trait], tt.body)
	}

	// raising an answer from far below the scale to its floor never lowers the trait
	var low, floor models.QuizResponse
	require.NoError(t, json.Unmarshal([]byte(`{"techSkillsRating": -1e300}`), &low))
	require.NoError(t, json.Unmarshal([]byte(`{"techSkillsRating": 1}`), &floor))
	assert.LessOrEqual(t, NormalizeTraits(&low)[models.TraitTechComfort], NormalizeTraits(&floor)[models.TraitTechComfort])
}

func TestStructurePreference_Inverted(t *testing.T) {
	tests := []struct {
		answer   string
		expected float64
	}{
		{"clear-steps", 0.1},
		{"some-structure", 0.3},
		{"mostly-flexible", 0.7},
		{"total-freedom", 0.9},
		{"Total Freedom", 0.9},
		{"some_structure", 0.3},
		{"whatever", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			q := &models.QuizResponse{WorkStructurePreference: models.Answered(tt.answer)}
			assert.InDelta(t, tt.expected, StructurePreference(q), 1e-9)
		})
	}

	assert.Equal(t, 0.5, StructurePreference(&models.QuizResponse{}))
}

func TestSocialComfort_TakesMaximum(t *testing.T) {
	q := &models.QuizResponse{
		DirectCommunicationEnjoyment: models.Answered(2),
		BrandFaceComfort:             models.Answered(5),
	}
	assert.Equal(t, 1.0, SocialComfort(q))

	q = &models.QuizResponse{DirectCommunicationEnjoyment: models.Answered(2)}
	assert.Equal(t, 0.25, SocialComfort(q), "unanswered sources are skipped, not defaulted")

	assert.Equal(t, 0.5, SocialComfort(&models.QuizResponse{}))
}

func TestCommunicationConfidence_UsesClientCallsFlag(t *testing.T) {
	tests := []struct {
		name     string
		q        *models.QuizResponse
		expected float64
	}{
		{
			name:     "flag only",
			q:        &models.QuizResponse{ClientCallsComfort: models.Answered("yes")},
			expected: 1.0,
		},
		{
			name: "both low",
			q: &models.QuizResponse{
				DirectCommunicationEnjoyment: models.Answered(1),
				ClientCallsComfort:           models.Answered("no"),
			},
			expected: 0.0,
		},
		{
			name: "likert beats hedged flag",
			q: &models.QuizResponse{
				DirectCommunicationEnjoyment: models.Answered(4),
				ClientCallsComfort:           models.Answered("maybe"),
			},
			expected: 0.75,
		},
		{
			name:     "nothing answered",
			q:        &models.QuizResponse{},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CommunicationConfidence(tt.q))
		})
	}
}

func TestFeedbackResilienceAndAdaptability(t *testing.T) {
	q := &models.QuizResponse{
		FeedbackRejectionResponse: models.Answered(1),
		DiscouragementResilience:  models.Answered(4),
		TrialErrorComfort:         models.Answered(3),
		UncertaintyHandling:       models.Answered(2),
	}
	assert.Equal(t, 0.75, FeedbackResilience(q))
	assert.Equal(t, 0.5, Adaptability(q))
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		answer   models.YesNo
		expected float64
	}{
		{models.Answered("yes"), 1.0},
		{models.Answered("YES"), 1.0},
		{models.Answered("true"), 1.0},
		{models.Answered("no"), 0.0},
		{models.Answered("maybe"), 0.5},
		{models.Answered("unsure"), 0.5},
		{models.Answered("some"), 0.5},
		{models.Answered("sometimes"), 0.5},
		{models.Answered("purple"), 0.5},
		{models.Unanswered[string](), 0.5},
	}

	for _, tt := range tests {
		raw, _ := tt.answer.Get()
		assert.Equal(t, tt.expected, FlagValue(tt.answer), "answer %q", raw)
	}
}

func TestMissingFieldDefault(t *testing.T) {
	q := &models.QuizResponse{RiskComfortLevel: models.Answered(5)}

	traits := NormalizeTraits(q)
	assert.Equal(t, 0.5, traits[models.TraitSelfMotivation])
	assert.Equal(t, 1.0, traits[models.TraitRiskTolerance])
}

func TestNormalizeTraits_NilResponse(t *testing.T) {
	traits := NormalizeTraits(nil)

	require.Len(t, traits, len(models.AllTraits))
	for _, name := range models.AllTraits {
		assert.Equal(t, 0.5, traits[name], string(name))
	}
}

func TestNormalizeTraits_AlwaysInRange(t *testing.T) {
	q := &models.QuizResponse{
		RiskComfortLevel:        models.Answered(1000),
		SelfMotivationLevel:     models.Answered(-1000),
		WorkStructurePreference: models.Answered("clear-steps"),
		ClientCallsComfort:      models.Answered("absolutely"),
	}

	for name, v := range NormalizeTraits(q) {
		assert.GreaterOrEqual(t, v, 0.0, string(name))
		assert.LessOrEqual(t, v, 1.0, string(name))
	}
}

func TestDeriveTrait(t *testing.T) {
	q := &models.QuizResponse{TechSkillsRating: models.Answered(4)}

	assert.Equal(t, 0.75, DeriveTrait(models.TraitTechComfort, q))
	assert.Equal(t, 0.5, DeriveTrait(models.TraitName("charisma"), q))
	assert.Equal(t, 0.5, DeriveTrait(models.TraitTechComfort, nil))
}

func TestNormalizeTraits_FromLooseJSON(t *testing.T) {
	payload := `{
		"riskComfortLevel": 5,
		"selfMotivationLevel": null,
		"techSkillsRating": "4",
		"creativeWorkEnjoyment": 2.6,
		"longTermConsistency": {"value": 3},
		"workStructurePreference": "total-freedom"
	}`

	var q models.QuizResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &q))

	traits := NormalizeTraits(&q)
	assert.Equal(t, 1.0, traits[models.TraitRiskTolerance])
	assert.Equal(t, 0.5, traits[models.TraitSelfMotivation])
	assert.Equal(t, 0.75, traits[models.TraitTechComfort])
	assert.Equal(t, 0.5, traits[models.TraitCreativity])
	assert.Equal(t, 0.5, traits[models.TraitConsistency])
	assert.InDelta(t, 0.9, traits[models.TraitStructurePreference], 1e-9)
}
