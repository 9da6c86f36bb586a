// internal/models/traits.go
package models

import (
	"math"
	"sort"
)

type TraitName string

const (
	TraitRiskTolerance           TraitName = "riskTolerance"
	TraitSelfMotivation          TraitName = "selfMotivation"
	TraitTechComfort             TraitName = "techComfort"
	TraitCommunicationConfidence TraitName = "communicationConfidence"
	TraitCreativity              TraitName = "creativity"
	TraitStructurePreference     TraitName = "structurePreference"
	TraitConsistency             TraitName = "consistency"
	TraitFeedbackResilience      TraitName = "feedbackResilience"
	TraitSocialComfort           TraitName = "socialComfort"

	TraitOrganization    TraitName = "organization"
	TraitAdaptability    TraitName = "adaptability"
	TraitCompetitiveness TraitName = "competitiveness"
)

// CoreTraits are the nine display traits, in display order.
var CoreTraits = []TraitName{
	TraitRiskTolerance,
	TraitSelfMotivation,
	TraitTechComfort,
	TraitCommunicationConfidence,
	TraitCreativity,
	TraitStructurePreference,
	TraitConsistency,
	TraitFeedbackResilience,
	TraitSocialComfort,
}

// AllTraits is CoreTraits followed by the supplementary traits.
var AllTraits = append(append([]TraitName{}, CoreTraits...),
	TraitOrganization,
	TraitAdaptability,
	TraitCompetitiveness,
)

func IsKnownTrait(name TraitName) bool {
	for _, t := range AllTraits {
		if t == name {
			return true
		}
	}
	return false
}

// TraitScoreSet maps each trait to a value in [0,1].
type TraitScoreSet map[TraitName]float64

// Get returns the score for name, or the neutral 0.5 if it was not derived.
func (s TraitScoreSet) Get(name TraitName) float64 {
	if v, ok := s[name]; ok {
		return v
	}
	return 0.5
}

// Names returns the traits present in the set, sorted.
func (s TraitScoreSet) Names() []TraitName {
	names := make([]TraitName, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Percentages rounds every score to a whole percentage for display.
func (s TraitScoreSet) Percentages() map[TraitName]int {
	out := make(map[TraitName]int, len(s))
	for name, v := range s {
		out[name] = int(math.Round(v * 100))
	}
	return out
}

// Strongest returns up to n core traits, highest first. Ties keep display order.
func (s TraitScoreSet) Strongest(n int) []TraitName {
	names := make([]TraitName, 0, len(CoreTraits))
	for _, name := range CoreTraits {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return s[names[i]] > s[names[j]] })
	if n < len(names) {
		names = names[:max(n, 0)]
	}
	return names
}
