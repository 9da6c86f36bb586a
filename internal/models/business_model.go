// internal/models/business_model.go
package models

type Direction string

const (
	DirectionHigh Direction = "high"
	DirectionLow  Direction = "low"
)

type BusinessModelDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`

	RequiredTraits map[TraitName]TraitRequirement `json:"requiredTraits,omitempty"`
	Requirements   ResourceProfile                `json:"requirements"`
	RequiredFlags  []string                       `json:"requiredFlags,omitempty"`

	TimeToStart     string `json:"timeToStart,omitempty"`
	StartupCost     string `json:"startupCost,omitempty"`
	PotentialIncome string `json:"potentialIncome,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	RiskLevel       string `json:"riskLevel,omitempty"`

	Pros       []string      `json:"pros,omitempty"`
	Cons       []string      `json:"cons,omitempty"`
	Tools      []string      `json:"tools,omitempty"`
	Skills     []string      `json:"skills,omitempty"`
	Resources  []string      `json:"resources,omitempty"`
	ActionPlan []ActionPhase `json:"actionPlan,omitempty"`
}

// TraitRequirement is how much a business model depends on one trait. Weight is the
// relative importance; Minimum in [0,1] is the level at which the trait stops limiting
// the fit. Direction low means the model suits people who score low on the trait.
type TraitRequirement struct {
	Weight    float64   `json:"weight"`
	Minimum   float64   `json:"minimum,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// ResourceProfile holds the numeric break points used in scoring. Zero means no
// requirement.
type ResourceProfile struct {
	MinBudget              float64 `json:"minBudget"`
	MinWeeklyHours         float64 `json:"minWeeklyHours"`
	MonthsToFirstIncome    float64 `json:"monthsToFirstIncome"`
	MonthlyIncomePotential float64 `json:"monthlyIncomePotential"`
}

type ActionPhase struct {
	Phase    string   `json:"phase"`
	Title    string   `json:"title"`
	Duration string   `json:"duration,omitempty"`
	Steps    []string `json:"steps"`
}

// Clone returns a deep copy so catalog entries handed to callers cannot be mutated
// through shared slices or maps.
func (d BusinessModelDefinition) Clone() BusinessModelDefinition {
	out := d
	if d.RequiredTraits != nil {
		out.RequiredTraits = make(map[TraitName]TraitRequirement, len(d.RequiredTraits))
		for k, v := range d.RequiredTraits {
			out.RequiredTraits[k] = v
		}
	}
	out.RequiredFlags = cloneStrings(d.RequiredFlags)
	out.Pros = cloneStrings(d.Pros)
	out.Cons = cloneStrings(d.Cons)
	out.Tools = cloneStrings(d.Tools)
	out.Skills = cloneStrings(d.Skills)
	out.Resources = cloneStrings(d.Resources)
	if d.ActionPlan != nil {
		out.ActionPlan = make([]ActionPhase, len(d.ActionPlan))
		for i, p := range d.ActionPlan {
			p.Steps = cloneStrings(p.Steps)
			out.ActionPlan[i] = p
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
