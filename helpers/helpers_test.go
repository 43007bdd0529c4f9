package helpers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"cpusched/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newTestLogger(t *testing.T, buf *bytes.Buffer) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.Hooks(func(entry zapcore.Entry) error {
		buf.WriteString(entry.Message)
		buf.WriteByte('\n')
		return nil
	})))
}

func TestParseRunFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf)

	condition, arguments, err := ParseRunFilter(`algorithm="rr" && quantum>=2`, logger)
	if err != nil {
		t.Fatalf("error in parsing filter : %s", err.Error())
	}
	if condition != "algorithm = @algorithm0 AND quantum >= @quantum1" {
		t.Fatalf("failed to parse filter . Invalid condition resulted : %v", condition)
	}
	if arguments["algorithm0"] != "rr" || arguments["quantum1"] != 2.0 {
		t.Fatalf("unexpected arguments %v", arguments)
	}
}

func TestParseGroupedRunFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf)

	condition, arguments, err := ParseRunFilter(`(algorithm="sjf" || algorithm="priority") && average_waiting_time<3`, logger)
	if err != nil {
		t.Fatalf("error in parsing filter : %s", err.Error())
	}
	if !strings.Contains(condition, "(algorithm = @algorithm0 OR algorithm = @algorithm1)") ||
		!strings.HasSuffix(condition, "AND avg_waiting_time < @avg_waiting_time2") {
		t.Fatalf("failed to parse filter . Invalid condition resulted : %v", condition)
	}
	if len(arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %v", arguments)
	}
}

func TestInvalidParseRunFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, &buf)

	for _, filter := range []string{
		`owner="admin"`,
		`algorithm>"rr"`,
		`quantum="two"`,
		`algorithm="rr" &&`,
	} {
		_, _, err := ParseRunFilter(filter, logger)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("filter %s: expected invalid input, got %v", filter, err)
		}
	}

	condition, arguments, err := ParseRunFilter("  ", logger)
	if err != nil || condition != "" || len(arguments) != 0 {
		t.Fatalf("empty filter should yield no condition, got %q %v %v", condition, arguments, err)
	}
}

func TestGenerateProcesses(t *testing.T) {
	seed := int64(42)
	first, err := GenerateProcesses(domain.GenerateRequest{Count: 20, Seed: &seed})
	if err != nil {
		t.Fatalf("failed to generate processes : %v", err)
	}
	second, _ := GenerateProcesses(domain.GenerateRequest{Count: 20, Seed: &seed})
	if len(first) != 20 {
		t.Fatalf("expected 20 processes, got %d", len(first))
	}
	for i, p := range first {
		if p.PID != i+1 {
			t.Errorf("expected pid %d, got %d", i+1, p.PID)
		}
		if p.ArrivalTime < 0 || p.ArrivalTime > DefaultMaxArrival ||
			p.BurstTime < DefaultMinBurst || p.BurstTime > DefaultMaxBurst ||
			*p.Priority < 1 || *p.Priority > DefaultMaxPriority {
			t.Errorf("P%d out of range : %+v", p.PID, p)
		}
		if p.RemainingTime != p.BurstTime {
			t.Errorf("P%d remaining %d, expected %d", p.PID, p.RemainingTime, p.BurstTime)
		}
		q := second[i]
		if p.ArrivalTime != q.ArrivalTime || p.BurstTime != q.BurstTime || *p.Priority != *q.Priority {
			t.Errorf("P%d differs between runs with the same seed", p.PID)
		}
	}
}

func TestGenerateProcessesInvalid(t *testing.T) {
	for _, request := range []domain.GenerateRequest{
		{Count: 0},
		{Count: MaxGeneratedProcesses + 1},
		{Count: 2, MinBurst: 5, MaxBurst: 3},
	} {
		if _, err := GenerateProcesses(request); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("request %+v: expected invalid input, got %v", request, err)
		}
	}
}

func TestHashRequest(t *testing.T) {
	request := &domain.ScheduleRequest{Algorithm: "rr", Quantum: 2, Processes: []*domain.Process{domain.NewProcess(1, 0, 3, nil)}}
	first, err := HashRequest(request)
	if err != nil {
		t.Fatalf("failed to hash request : %v", err)
	}
	second, _ := HashRequest(request)
	request.Quantum = 3
	third, _ := HashRequest(request)
	if first != second || first == third {
		t.Fatalf("unexpected hashes %s %s %s", first, second, third)
	}
}

func TestSortProcesses(t *testing.T) {
	processes := []*domain.Process{
		domain.NewProcess(1, 4, 2, nil),
		domain.NewProcess(2, 0, 7, nil),
		domain.NewProcess(3, 2, 1, nil),
	}
	SortProcesses(processes, "burst_time", "desc")
	if processes[0].PID != 2 || processes[1].PID != 1 || processes[2].PID != 3 {
		t.Fatalf("failed to sort by burst time desc")
	}
	SortProcesses(processes, "arrival_time", "asc")
	if processes[0].PID != 2 || processes[1].PID != 3 || processes[2].PID != 1 {
		t.Fatalf("failed to sort by arrival time asc")
	}
}

func completedProcess(pid, arrival, burst, start int) *domain.Process {
	p := domain.NewProcess(pid, arrival, burst, domain.IntPtr(1))
	p.StartTime = domain.IntPtr(start)
	p.FinishTime = domain.IntPtr(start + burst)
	p.TurnaroundTime = domain.IntPtr(start + burst - arrival)
	p.WaitingTime = domain.IntPtr(start - arrival)
	p.RemainingTime = 0
	return p
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	completed := []*domain.Process{completedProcess(1, 0, 5, 0), completedProcess(2, 1, 3, 5)}
	RenderTable(&out, completed, domain.Summary{AverageWaitingTime: 2, AverageTurnaroundTime: 6})
	table := out.String()
	for _, expected := range []string{"PID", "P1", "P2", "2.00", "6.00"} {
		if !strings.Contains(table, expected) {
			t.Errorf("table does not contain %q:\n%s", expected, table)
		}
	}
}

func TestRenderGantt(t *testing.T) {
	var out bytes.Buffer
	timeline := domain.Timeline{}
	timeline.Record(domain.NewProcess(1, 0, 2, nil), 0, 2)
	timeline.Record(domain.NewProcess(2, 4, 1, nil), 4, 5)
	RenderGantt(&out, timeline)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "P1") || !strings.Contains(lines[0], "idle") || !strings.Contains(lines[0], "P2") {
		t.Errorf("unexpected bars %q", lines[0])
	}
	if strings.Index(lines[0], "P1") > strings.Index(lines[0], "idle") {
		t.Errorf("idle block should follow P1 : %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0") || !strings.HasSuffix(lines[1], "5") {
		t.Errorf("unexpected time marks %q", lines[1])
	}
}

func TestLoadProcessesCSV(t *testing.T) {
	input := "pid,arrival,burst,priority\nP1,0,5,2\n2, 1, 3, 1\n3,2,4\n"
	processes, err := LoadProcessesCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to load processes : %v", err)
	}
	if len(processes) != 3 {
		t.Fatalf("expected 3 processes, got %d", len(processes))
	}
	if processes[0].PID != 1 || *processes[0].Priority != 2 || processes[1].ArrivalTime != 1 || processes[2].Priority != nil {
		t.Fatalf("unexpected processes %+v %+v %+v", processes[0], processes[1], processes[2])
	}
	if processes[2].RemainingTime != 4 {
		t.Fatalf("expected remaining time to equal burst time")
	}

	if _, err := LoadProcessesCSV(strings.NewReader("1,0\n")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for short row, got %v", err)
	}
	if _, err := LoadProcessesCSV(strings.NewReader("1,0,x\n")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for non numeric field, got %v", err)
	}
}

func TestLoadProcessesJSON(t *testing.T) {
	input := `[{"pid":1,"arrival_time":0,"burst_time":3,"priority":2},{"pid":2,"arrival_time":1,"burst_time":1}]`
	processes, err := LoadProcessesJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to load processes : %v", err)
	}
	if len(processes) != 2 || processes[0].RemainingTime != 3 || *processes[0].Priority != 2 || processes[1].Priority != nil {
		t.Fatalf("unexpected processes %+v %+v", processes[0], processes[1])
	}
}

func TestRenderComparison(t *testing.T) {
	var out bytes.Buffer
	summaries := map[string]domain.Summary{
		"fcfs": {AverageWaitingTime: 4.5, Makespan: 12},
		"rr":   {AverageWaitingTime: 3.25, Makespan: 12},
	}
	RenderComparison(&out, []string{"fcfs", "sjf", "rr"}, summaries)
	table := out.String()
	for _, expected := range []string{"fcfs", "rr", "4.50", "3.25"} {
		if !strings.Contains(table, expected) {
			t.Errorf("comparison does not contain %q:\n%s", expected, table)
		}
	}
	if strings.Contains(table, "sjf") {
		t.Errorf("comparison should skip algorithms without a summary:\n%s", table)
	}
}
