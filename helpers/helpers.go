package helpers

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"cpusched/domain"
)

// GenerateProcesses returns random demo processes. The same seed always yields the same processes.
func GenerateProcesses(request domain.GenerateRequest) ([]*domain.Process, error) {
	if request.Count <= 0 || request.Count > MaxGeneratedProcesses {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", domain.ErrInvalidInput, MaxGeneratedProcesses)
	}
	maxArrival := valueOrDefault(request.MaxArrival, DefaultMaxArrival)
	minBurst := valueOrDefault(request.MinBurst, DefaultMinBurst)
	maxBurst := valueOrDefault(request.MaxBurst, DefaultMaxBurst)
	maxPriority := valueOrDefault(request.MaxPriority, DefaultMaxPriority)
	if maxBurst < minBurst {
		return nil, fmt.Errorf("%w: max burst %d lower than min burst %d", domain.ErrInvalidInput, maxBurst, minBurst)
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}
	r := rand.New(rand.NewSource(seed))

	processes := make([]*domain.Process, 0, request.Count)
	for i := 0; i < request.Count; i++ {
		arrival := r.Intn(maxArrival + 1)
		burst := minBurst + r.Intn(maxBurst-minBurst+1)
		priority := 1 + r.Intn(maxPriority)
		processes = append(processes, domain.NewProcess(i+1, arrival, burst, domain.IntPtr(priority)))
	}
	return processes, nil
}

func valueOrDefault(value, defaultValue int) int {
	if value <= 0 {
		return defaultValue
	}
	return value
}

// HashRequest returns a stable key for a schedule request, used for caching results
func HashRequest(request *domain.ScheduleRequest) (string, error) {
	marshalledRequest, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(marshalledRequest)
	return base64.URLEncoding.EncodeToString(sum[:]), nil
}

// SortProcesses orders processes by one of ProcessSortFields
func SortProcesses(processes []*domain.Process, sortBy, sortDir string) []*domain.Process {
	key := func(p *domain.Process) int {
		switch sortBy {
		case "arrival_time":
			return p.ArrivalTime
		case "burst_time":
			return p.BurstTime
		case "finish_time":
			if p.FinishTime != nil {
				return *p.FinishTime
			}
		case "waiting_time":
			if p.WaitingTime != nil {
				return *p.WaitingTime
			}
		}
		return p.PID
	}
	sort.SliceStable(processes, func(i, j int) bool {
		if sortDir == "desc" {
			return key(processes[i]) > key(processes[j])
		}
		return key(processes[i]) < key(processes[j])
	})
	return processes
}
