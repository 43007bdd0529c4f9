package helpers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpusched/domain"
)

// LoadProcessesCSV reads rows of pid,arrival,burst[,priority]. A leading header row is skipped.
func LoadProcessesCSV(r io.Reader) ([]*domain.Process, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV: %s", domain.ErrInvalidInput, err.Error())
	}

	processes := make([]*domain.Process, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if i == 0 {
			if _, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(row[0]), "P")); err != nil {
				continue
			}
		}
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected 3 or 4", domain.ErrInvalidInput, i+1, len(row))
		}
		values := make([]int, len(row))
		for j, field := range row {
			value, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(field), "P"))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d field %d: %q is not an integer", domain.ErrInvalidInput, i+1, j+1, field)
			}
			values[j] = value
		}
		var priority *int
		if len(values) == 4 {
			priority = domain.IntPtr(values[3])
		}
		processes = append(processes, domain.NewProcess(values[0], values[1], values[2], priority))
	}
	return processes, nil
}

// LoadProcessesJSON reads a JSON array of processes
func LoadProcessesJSON(r io.Reader) ([]*domain.Process, error) {
	processes := make([]*domain.Process, 0)
	if err := json.NewDecoder(r).Decode(&processes); err != nil {
		return nil, fmt.Errorf("%w: decoding JSON: %s", domain.ErrInvalidInput, err.Error())
	}
	for _, p := range processes {
		if p != nil && !p.HasRunData() {
			p.RemainingTime = p.BurstTime
		}
	}
	return processes, nil
}
