package repositories

import (
	"errors"
	"testing"
	"time"

	"cpusched/domain"

	"go.uber.org/zap/zaptest"
)

func TestMemoryRepo(t *testing.T) {
	repo := NewMemoryRepo(zaptest.NewLogger(t))
	now := time.Now()
	older := &domain.ScheduleRun{RunID: "a", Algorithm: "fcfs", CreatedTimestamp: now.Add(-time.Minute)}
	newer := &domain.ScheduleRun{RunID: "b", Algorithm: "rr", Quantum: 2, CreatedTimestamp: now}

	for _, run := range []*domain.ScheduleRun{older, newer} {
		if err := repo.InsertRun(run); err != nil {
			t.Fatalf("failed to insert run %s : %v", run.RunID, err)
		}
	}
	if err := repo.InsertRun(older); err == nil {
		t.Fatal("expected error for duplicate run id")
	}

	run, err := repo.GetRun("b")
	if err != nil || run.Algorithm != "rr" {
		t.Fatalf("failed to get run : %v %+v", err, run)
	}

	runs, err := repo.ListRuns("")
	if err != nil || len(runs) != 2 || runs[0].RunID != "b" {
		t.Fatalf("unexpected runs : %v %+v", err, runs)
	}
	if _, err := repo.ListRuns(`algorithm="rr"`); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for filter, got %v", err)
	}

	if err := repo.DeleteRun("a"); err != nil {
		t.Fatalf("failed to delete run : %v", err)
	}
	if _, err := repo.GetRun("a"); !errors.Is(err, domain.ErrRunNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.DeleteRun("a"); !errors.Is(err, domain.ErrRunNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestProfilingServiceDisabled(t *testing.T) {
	profiler := NewProfileService("", zaptest.NewLogger(t))
	if err := profiler.StartProfiling(); err != nil {
		t.Fatalf("disabled profiler should not fail : %v", err)
	}
	if profiler.Cpufile != nil {
		t.Fatal("disabled profiler should not open a file")
	}
	profiler.StopProfiling()
}
