package nt

// SagaStep is one forward action of a Saga and the action that undoes it.
// Compensate may be nil when there is nothing to undo.
type SagaStep struct {
	Name       string
	Run        func() error
	Compensate func() error
}

// Saga runs steps in order across stores that cannot share a transaction.
// When a step fails, the compensations of the steps that already succeeded
// run in reverse order. Compensation errors are logged and dropped: the
// caller only ever sees the error of the failing step.
type Saga struct {
	name   string
	logger Logger
	steps  []SagaStep
}

func NewSaga(name string, logger Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// Step appends a step and returns the saga for chaining.
func (s *Saga) Step(name string, run, compensate func() error) *Saga {
	s.steps = append(s.steps, SagaStep{Name: name, Run: run, Compensate: compensate})
	return s
}

// Execute runs the saga.
func (s *Saga) Execute() error {
	for i, step := range s.steps {
		if err := step.Run(); err != nil {
			s.logger.Warn("saga step failed", "saga", s.name, "step", step.Name, "error", err)
			s.compensate(i)
			return err
		}
		s.logger.Debug("saga step done", "saga", s.name, "step", step.Name)
	}
	return nil
}

// compensate undoes steps[0:failed] last to first.
func (s *Saga) compensate(failed int) {
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(); err != nil {
			s.logger.Warn("saga compensation failed", "saga", s.name, "step", step.Name, "error", err)
			continue
		}
		s.logger.Info("saga step compensated", "saga", s.name, "step", step.Name)
	}
}
