package helpers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpusched/domain"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes the per process results and the run averages
func RenderTable(w io.Writer, completed []*domain.Process, summary domain.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Priority", "Start", "Finish", "Waiting", "Turnaround"})
	for _, p := range completed {
		table.Append([]string{
			p.Label(),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.BurstTime),
			formatOptional(p.Priority),
			formatOptional(p.StartTime),
			formatOptional(p.FinishTime),
			formatOptional(p.WaitingTime),
			formatOptional(p.TurnaroundTime),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average %.2f", summary.AverageWaitingTime),
		fmt.Sprintf("Average %.2f", summary.AverageTurnaroundTime)})
	table.Render()
}

// RenderSummary writes the aggregate metrics of a run
func RenderSummary(w io.Writer, summary domain.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Average Waiting Time", fmt.Sprintf("%.2f units", summary.AverageWaitingTime)},
		{"Average Turnaround Time", fmt.Sprintf("%.2f units", summary.AverageTurnaroundTime)},
		{"CPU Utilization", fmt.Sprintf("%.2f%%", summary.CPUUtilization*100)},
		{"Throughput", fmt.Sprintf("%.2f/t", summary.Throughput)},
		{"Makespan", strconv.Itoa(summary.Makespan)},
	})
	table.Render()
}

// RenderGantt writes a text Gantt chart, gaps between intervals are shown as idle blocks
func RenderGantt(w io.Writer, timeline domain.Timeline) {
	if len(timeline) == 0 {
		fmt.Fprintln(w, "(empty timeline)")
		return
	}

	var bars, marks strings.Builder
	bars.WriteString("|")
	last := 0
	block := func(label string, start int) {
		width := max(len(label)+2, len(strconv.Itoa(start))+2, 6)
		padding := width - len(label)
		bars.WriteString(strings.Repeat(" ", padding/2) + label + strings.Repeat(" ", padding-padding/2) + "|")
		mark := strconv.Itoa(start)
		marks.WriteString(mark + strings.Repeat(" ", width+1-len(mark)))
	}
	for _, interval := range timeline {
		if interval.Start > last {
			block("idle", last)
		}
		block(interval.Label, interval.Start)
		last = interval.End
	}
	marks.WriteString(strconv.Itoa(last))

	fmt.Fprintln(w, bars.String())
	fmt.Fprintln(w, marks.String())
}

func formatOptional(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// RenderComparison writes one row of aggregate metrics per algorithm, in the order of algorithms
func RenderComparison(w io.Writer, algorithms []string, summaries map[string]domain.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg Waiting", "Avg Turnaround", "CPU Utilization", "Throughput", "Makespan"})
	for _, algorithm := range algorithms {
		summary, ok := summaries[algorithm]
		if !ok {
			continue
		}
		table.Append([]string{
			algorithm,
			fmt.Sprintf("%.2f", summary.AverageWaitingTime),
			fmt.Sprintf("%.2f", summary.AverageTurnaroundTime),
			fmt.Sprintf("%.2f%%", summary.CPUUtilization*100),
			fmt.Sprintf("%.2f", summary.Throughput),
			strconv.Itoa(summary.Makespan),
		})
	}
	table.Render()
}
