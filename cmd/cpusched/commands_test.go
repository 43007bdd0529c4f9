package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cpusched/domain"
	"cpusched/helpers"
)

func writeTempFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write %s : %v", name, err)
	}
	return path
}

func TestGeneratedProcessesLoadBack(t *testing.T) {
	seed := int64(7)
	processes, err := helpers.GenerateProcesses(domain.GenerateRequest{Seed: &seed, Count: 6})
	if err != nil {
		t.Fatalf("could not generate processes : %v", err)
	}

	for _, format := range []string{"csv", "json"} {
		var out bytes.Buffer
		if err := writeProcesses(&out, processes, format); err != nil {
			t.Fatalf("%s: could not write processes : %v", format, err)
		}
		loaded, err := loadProcesses(writeTempFile(t, "processes."+format, out.String()))
		if err != nil {
			t.Fatalf("%s: could not load processes : %v", format, err)
		}
		if len(loaded) != len(processes) {
			t.Fatalf("%s: expected %d processes, got %d", format, len(processes), len(loaded))
		}
		for i := range loaded {
			if loaded[i].PID != processes[i].PID || loaded[i].BurstTime != processes[i].BurstTime ||
				*loaded[i].Priority != *processes[i].Priority {
				t.Errorf("%s: process %d differs : %+v vs %+v", format, i, loaded[i], processes[i])
			}
		}
	}

	if err := writeProcesses(&bytes.Buffer{}, processes, "xml"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown format, got %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	path := writeTempFile(t, "processes.csv", "pid,arrival,burst\n1,0,5\n2,1,3\n3,2,1\n")

	var out bytes.Buffer
	cmd := runCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--algorithm", "sjf", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command failed : %v", err)
	}
	for _, expected := range []string{"Algorithm: sjf", "P1", "P3", "P2", "2.67", "5.67"} {
		if !strings.Contains(out.String(), expected) {
			t.Errorf("output does not contain %q:\n%s", expected, out.String())
		}
	}

	cmd = runCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--algorithm", "lottery", path})
	if err := cmd.Execute(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown algorithm, got %v", err)
	}
}

func TestCompareCommandSkipsPriority(t *testing.T) {
	path := writeTempFile(t, "processes.csv", "1,0,4\n2,1,3\n")

	var out bytes.Buffer
	cmd := compareCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("compare command failed : %v", err)
	}
	table := out.String()
	for _, expected := range []string{"fcfs", "sjf", "rr"} {
		if !strings.Contains(table, expected) {
			t.Errorf("comparison does not contain %q:\n%s", expected, table)
		}
	}
	if strings.Contains(table, "priority") {
		t.Errorf("priority should be skipped without priorities:\n%s", table)
	}
}
