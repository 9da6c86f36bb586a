// internal/models/quiz.go
package models

import (
	"fmt"
	"sort"
)

type (
	Likert = Optional[int]
	Amount = Optional[float64]
	Choice = Optional[string]
	YesNo  = Optional[string]
)

const (
	LikertMin = 1
	LikertMax = 5
)

// QuizResponse is a single user's questionnaire submission. It is treated as immutable
// once submitted.
type QuizResponse struct {
	// Likert ratings, 1-5.
	RiskComfortLevel                 Likert `json:"riskComfortLevel,omitzero"`
	SelfMotivationLevel              Likert `json:"selfMotivationLevel,omitzero"`
	TechSkillsRating                 Likert `json:"techSkillsRating,omitzero"`
	DirectCommunicationEnjoyment     Likert `json:"directCommunicationEnjoyment,omitzero"`
	CreativeWorkEnjoyment            Likert `json:"creativeWorkEnjoyment,omitzero"`
	BrandFaceComfort                 Likert `json:"brandFaceComfort,omitzero"`
	OrganizationLevel                Likert `json:"organizationLevel,omitzero"`
	LongTermConsistency              Likert `json:"longTermConsistency,omitzero"`
	FeedbackRejectionResponse        Likert `json:"feedbackRejectionResponse,omitzero"`
	CompetitivenessLevel             Likert `json:"competitivenessLevel,omitzero"`
	TrialErrorComfort                Likert `json:"trialErrorComfort,omitzero"`
	DiscouragementResilience         Likert `json:"discouragementResilience,omitzero"`
	UncertaintyHandling              Likert `json:"uncertaintyHandling,omitzero"`
	PassiveIncomeImportance          Likert `json:"passiveIncomeImportance,omitzero"`
	PassionIdentityAlignment         Likert `json:"passionIdentityAlignment,omitzero"`
	MeaningfulContributionImportance Likert `json:"meaningfulContributionImportance,omitzero"`
	ControlImportance                Likert `json:"controlImportance,omitzero"`
	SocialMediaInterest              Likert `json:"socialMediaInterest,omitzero"`

	WeeklyTimeCommitment Amount `json:"weeklyTimeCommitment,omitzero"`
	UpfrontInvestment    Amount `json:"upfrontInvestment,omitzero"`
	SuccessIncomeGoal    Amount `json:"successIncomeGoal,omitzero"`

	LearningPreference          Choice `json:"learningPreference,omitzero"`
	WorkStructurePreference     Choice `json:"workStructurePreference,omitzero"`
	WorkCollaborationPreference Choice `json:"workCollaborationPreference,omitzero"`
	DecisionMakingStyle         Choice `json:"decisionMakingStyle,omitzero"`
	MainMotivation              Choice `json:"mainMotivation,omitzero"`
	FirstIncomeTimeline         Choice `json:"firstIncomeTimeline,omitzero"`
	BusinessExitPlan            Choice `json:"businessExitPlan,omitzero"`
	BusinessGrowthSize          Choice `json:"businessGrowthSize,omitzero"`
	RepetitiveTasksFeeling      Choice `json:"repetitiveTasksFeeling,omitzero"`
	PathPreference              Choice `json:"pathPreference,omitzero"`
	TeachVsSolve                Choice `json:"teachVsSolve,omitzero"`
	WorkstylePreference         Choice `json:"workstylePreference,omitzero"`

	ToolLearningWillingness  YesNo `json:"toolLearningWillingness,omitzero"`
	WorkspaceAvailability    YesNo `json:"workspaceAvailability,omitzero"`
	OnlinePresenceComfort    YesNo `json:"onlinePresenceComfort,omitzero"`
	ClientCallsComfort       YesNo `json:"clientCallsComfort,omitzero"`
	PhysicalShippingOpenness YesNo `json:"physicalShippingOpenness,omitzero"`
	ExistingAudience         YesNo `json:"existingAudience,omitzero"`
	PromotingOthersOpenness  YesNo `json:"promotingOthersOpenness,omitzero"`
	EcosystemParticipation   YesNo `json:"ecosystemParticipation,omitzero"`
}

// Flag names match the JSON keys of the yes/no answers. Catalog entries list them
// under requiredFlags.
const (
	FlagToolLearning     = "toolLearningWillingness"
	FlagWorkspace        = "workspaceAvailability"
	FlagOnlinePresence   = "onlinePresenceComfort"
	FlagClientCalls      = "clientCallsComfort"
	FlagPhysicalShipping = "physicalShippingOpenness"
	FlagExistingAudience = "existingAudience"
	FlagPromotingOthers  = "promotingOthersOpenness"
	FlagEcosystem        = "ecosystemParticipation"
)

// Flag returns the yes/no answer stored under name. Unknown names are unanswered.
func (q *QuizResponse) Flag(name string) YesNo {
	switch name {
	case FlagToolLearning:
		return q.ToolLearningWillingness
	case FlagWorkspace:
		return q.WorkspaceAvailability
	case FlagOnlinePresence:
		return q.OnlinePresenceComfort
	case FlagClientCalls:
		return q.ClientCallsComfort
	case FlagPhysicalShipping:
		return q.PhysicalShippingOpenness
	case FlagExistingAudience:
		return q.ExistingAudience
	case FlagPromotingOthers:
		return q.PromotingOthersOpenness
	case FlagEcosystem:
		return q.EcosystemParticipation
	}
	return Unanswered[string]()
}

func (q *QuizResponse) likerts() map[string]Likert {
	return map[string]Likert{
		"riskComfortLevel":                 q.RiskComfortLevel,
		"selfMotivationLevel":              q.SelfMotivationLevel,
		"techSkillsRating":                 q.TechSkillsRating,
		"directCommunicationEnjoyment":     q.DirectCommunicationEnjoyment,
		"creativeWorkEnjoyment":            q.CreativeWorkEnjoyment,
		"brandFaceComfort":                 q.BrandFaceComfort,
		"organizationLevel":                q.OrganizationLevel,
		"longTermConsistency":              q.LongTermConsistency,
		"feedbackRejectionResponse":        q.FeedbackRejectionResponse,
		"competitivenessLevel":             q.CompetitivenessLevel,
		"trialErrorComfort":                q.TrialErrorComfort,
		"discouragementResilience":         q.DiscouragementResilience,
		"uncertaintyHandling":              q.UncertaintyHandling,
		"passiveIncomeImportance":          q.PassiveIncomeImportance,
		"passionIdentityAlignment":         q.PassionIdentityAlignment,
		"meaningfulContributionImportance": q.MeaningfulContributionImportance,
		"controlImportance":                q.ControlImportance,
		"socialMediaInterest":              q.SocialMediaInterest,
	}
}

// Warnings lists answers that will be clamped or ignored during scoring. It is
// informational only; scoring never rejects a response.
func (q *QuizResponse) Warnings() []string {
	var out []string
	for name, l := range q.likerts() {
		if v, ok := l.Get(); ok && (v < LikertMin || v > LikertMax) {
			out = append(out, fmt.Sprintf("%s=%d outside %d-%d", name, v, LikertMin, LikertMax))
		}
	}
	amounts := map[string]Amount{
		"weeklyTimeCommitment": q.WeeklyTimeCommitment,
		"upfrontInvestment":    q.UpfrontInvestment,
		"successIncomeGoal":    q.SuccessIncomeGoal,
	}
	for name, a := range amounts {
		if v, ok := a.Get(); ok && v < 0 {
			out = append(out, fmt.Sprintf("%s=%g is negative", name, v))
		}
	}
	sort.Strings(out)
	return out
}

// AnsweredCount reports how many Likert, numeric, choice and flag answers are set.
func (q *QuizResponse) AnsweredCount() int {
	n := 0
	for _, l := range q.likerts() {
		if l.IsSet() {
			n++
		}
	}
	for _, a := range []Amount{q.WeeklyTimeCommitment, q.UpfrontInvestment, q.SuccessIncomeGoal} {
		if a.IsSet() {
			n++
		}
	}
	for _, c := range []Choice{
		q.LearningPreference, q.WorkStructurePreference, q.WorkCollaborationPreference,
		q.DecisionMakingStyle, q.MainMotivation, q.FirstIncomeTimeline, q.BusinessExitPlan,
		q.BusinessGrowthSize, q.RepetitiveTasksFeeling, q.PathPreference, q.TeachVsSolve,
		q.WorkstylePreference,
		q.ToolLearningWillingness, q.WorkspaceAvailability, q.OnlinePresenceComfort,
		q.ClientCallsComfort, q.PhysicalShippingOpenness, q.ExistingAudience,
		q.PromotingOthersOpenness, q.EcosystemParticipation,
	} {
		if c.IsSet() {
			n++
		}
	}
	return n
}
