package entity

// ScenarioStep is one question/answer unit of a scenario. Result stays nil
// until the step's input has been validated and recorded.
type ScenarioStep struct {
	Number int     `json:"number"`
	Result *string `json:"result"`
}

// Scenario is the persisted multi-step conversation state for one user.
// Steps are numbered 1..len(Steps); CurrentStep points at the step awaiting
// input and may exceed len(Steps) once the last step has been answered.
type Scenario struct {
	Name        string         `json:"name"`
	Steps       []ScenarioStep `json:"steps"`
	CurrentStep int            `json:"current_step"`
}

func NewScenario(name string) *Scenario {
	return &Scenario{
		Name:        name,
		CurrentStep: 1,
		Steps:       []ScenarioStep{{Number: 1}},
	}
}

// EnsureStep appends an empty step for number n if it is not present yet.
// Reports whether the scenario was modified.
func (s *Scenario) EnsureStep(n int) bool {
	for _, step := range s.Steps {
		if step.Number == n {
			return false
		}
	}
	s.Steps = append(s.Steps, ScenarioStep{Number: n})
	return true
}

// SetResult records the validated result for step n.
func (s *Scenario) SetResult(n int, result string) {
	for i := range s.Steps {
		if s.Steps[i].Number == n {
			s.Steps[i].Result = &result
			return
		}
	}
}

// StepResult returns the recorded result of step n, or nil.
func (s *Scenario) StepResult(n int) *string {
	for i := range s.Steps {
		if s.Steps[i].Number == n {
			return s.Steps[i].Result
		}
	}
	return nil
}

// Back drops the last step and moves the cursor onto the new last step,
// clearing its result so it will be asked again. With a single step it
// only clears that step.
func (s *Scenario) Back() {
	if len(s.Steps) > 1 {
		s.Steps = s.Steps[:len(s.Steps)-1]
	}
	last := len(s.Steps) - 1
	s.Steps[last].Result = nil
	s.CurrentStep = s.Steps[last].Number
}

// Reset truncates the scenario to a single unanswered first step.
func (s *Scenario) Reset() {
	s.Steps = s.Steps[:1]
	s.Steps[0].Result = nil
	s.CurrentStep = s.Steps[0].Number
}
