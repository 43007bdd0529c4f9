package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"cpusched/domain"

	"go.uber.org/zap"
)

// MemoryRepo keeps schedule runs in process memory, used when postgres is disabled
type MemoryRepo struct {
	mu        sync.RWMutex
	runs      map[string]*domain.ScheduleRun
	memLogger *zap.Logger
}

// NewMemoryRepo returns an empty MemoryRepo
func NewMemoryRepo(logger *zap.Logger) *MemoryRepo {
	return &MemoryRepo{
		runs:      make(map[string]*domain.ScheduleRun),
		memLogger: logger,
	}
}

// InsertRun stores a schedule run
func (m *MemoryRepo) InsertRun(run *domain.ScheduleRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[run.RunID]; ok {
		return fmt.Errorf("run %s already stored", run.RunID)
	}
	m.runs[run.RunID] = run
	m.memLogger.Debug("stored run in memory", zap.String("run_id", run.RunID))
	return nil
}

// GetRun retrieves a schedule run
func (m *MemoryRepo) GetRun(runID string) (*domain.ScheduleRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	return run, nil
}

// ListRuns returns every stored run, newest first. Filters need postgres.
func (m *MemoryRepo) ListRuns(filter string) ([]*domain.ScheduleRun, error) {
	if strings.TrimSpace(filter) != "" {
		return nil, fmt.Errorf("%w: filtering runs requires postgres storage", domain.ErrInvalidInput)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := make([]*domain.ScheduleRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].CreatedTimestamp.Equal(runs[j].CreatedTimestamp) {
			return runs[i].RunID < runs[j].RunID
		}
		return runs[i].CreatedTimestamp.After(runs[j].CreatedTimestamp)
	})
	return runs, nil
}

// DeleteRun removes a schedule run
func (m *MemoryRepo) DeleteRun(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[runID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	delete(m.runs, runID)
	return nil
}
