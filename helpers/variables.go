package helpers

var (
	// RunFilterFields maps fields usable in a run filter to their postgres columns
	RunFilterFields = map[string]string{
		"algorithm":               "algorithm",
		"quantum":                 "quantum",
		"processes":               "nr_processes",
		"average_waiting_time":    "avg_waiting_time",
		"average_turnaround_time": "avg_turnaround_time",
	}
	// ProcessSortFields represents sort fields for process tables
	ProcessSortFields = []string{"pid", "arrival_time", "burst_time", "finish_time", "waiting_time"}
	// SortDirections represents sort directions
	SortDirections = []string{"asc", "desc"}
	// MetricsName represents slice of metrics that are unregistered when closing app
	MetricsName = []string{"schedule.run", "schedule.errors", "schedule.cache_hits", "schedule.get",
		"schedule.list", "schedule.export_errors", "processes.generate", "schedule_latency.response"}
	// MaxGeneratedProcesses bounds random process generation
	MaxGeneratedProcesses = 1000
	// DefaultMaxArrival is the default upper bound of generated arrival times
	DefaultMaxArrival = 5
	// DefaultMinBurst is the default lower bound of generated burst times
	DefaultMinBurst = 2
	// DefaultMaxBurst is the default upper bound of generated burst times
	DefaultMaxBurst = 7
	// DefaultMaxPriority is the default upper bound of generated priorities
	DefaultMaxPriority = 5
)
