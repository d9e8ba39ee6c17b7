package form

import (
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/domain"
)

// Step is one of the five authoring steps, in order.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepImpact
	StepOperations
	StepSkills
	StepCultureApplication
)

// FirstStep and LastStep bound navigation.
const (
	FirstStep = StepBasicInfo
	LastStep  = StepCultureApplication
)

var stepNames = map[Step]string{
	StepBasicInfo:          "basic_info",
	StepImpact:             "impact",
	StepOperations:         "operations",
	StepSkills:             "skills",
	StepCultureApplication: "culture_application",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Prev returns the previous step. Going back from the first step stays on
// it.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// ParseStep converts a step name to a Step.
func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrInvalidStep, name)
}
