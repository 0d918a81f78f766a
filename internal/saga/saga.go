// Package saga runs ordered multi-store write sequences with compensating
// actions. There is no cross-store transaction between the blob bucket and the
// database, so a failed step must undo every step that already completed.
package saga

import (
	"context"
	"fmt"
	"log/slog"
)

// Step pairs a forward action with the compensation that undoes it.
// Compensate may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga is an ordered list of steps for a single request. It holds no state
// across calls; build a fresh one per operation.
type Saga struct {
	name  string
	steps []Step
}

func New(name string) *Saga {
	return &Saga{name: name}
}

// Add appends a step. Steps run in the order they were added.
func (s *Saga) Add(step Step) {
	s.steps = append(s.steps, step)
}

// AddFunc is shorthand for Add with bare functions.
func (s *Saga) AddFunc(name string, run, compensate func(ctx context.Context) error) {
	s.Add(Step{Name: name, Run: run, Compensate: compensate})
}

// Execute runs the steps in order. On the first failure it invokes the
// compensations of all previously completed steps in reverse order and returns
// the original error. Compensation failures are logged and never escalated;
// the saga does not compensate its own compensation.
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		err := step.Run(ctx)
		if err == nil {
			continue
		}

		slog.Warn("saga step failed, compensating",
			"saga", s.name,
			"step", step.Name,
			"completed_steps", i,
			"error", err,
		)
		s.compensate(ctx, i)

		return fmt.Errorf("%s: %w", step.Name, err)
	}
	return nil
}

// compensate undoes steps [0, upto) in reverse order, best-effort.
func (s *Saga) compensate(ctx context.Context, upto int) {
	for i := upto - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		err := step.Compensate(ctx)
		if err != nil {
			slog.Error("saga compensation failed",
				"saga", s.name,
				"step", step.Name,
				"error", err,
			)
		}
	}
}
