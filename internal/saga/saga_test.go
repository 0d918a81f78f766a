package saga

import (
	"context"
	"errors"
	"testing"
)

func TestExecuteRunsStepsInOrder(t *testing.T) {
	var order []string
	s := New("test")
	s.AddFunc("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	}, nil)
	s.AddFunc("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	}, nil)

	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestExecuteCompensatesCompletedStepsInReverse(t *testing.T) {
	var compensated []string
	boom := errors.New("boom")

	s := New("test")
	s.AddFunc("a", func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			compensated = append(compensated, "a")
			return nil
		})
	s.AddFunc("b", func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			compensated = append(compensated, "b")
			return nil
		})
	s.AddFunc("c", func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			compensated = append(compensated, "c")
			return nil
		})

	err := s.Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	// The failed step itself is never compensated, only the completed ones,
	// newest first.
	if len(compensated) != 2 || compensated[0] != "b" || compensated[1] != "a" {
		t.Fatalf("expected [b a], got %v", compensated)
	}
}

func TestExecuteSurfacesOriginalErrorWhenCompensationFails(t *testing.T) {
	boom := errors.New("boom")

	s := New("test")
	s.AddFunc("a", func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return errors.New("compensation broke too") })
	s.AddFunc("b", func(ctx context.Context) error { return boom }, nil)

	err := s.Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected original step error, got %v", err)
	}
}

func TestExecuteSkipsNilCompensation(t *testing.T) {
	s := New("test")
	s.AddFunc("a", func(ctx context.Context) error { return nil }, nil)
	s.AddFunc("b", func(ctx context.Context) error { return errors.New("fail") }, nil)

	// Must not panic on the nil compensation of step a.
	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
