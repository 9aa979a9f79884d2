// Package report renders the run summary printed after a discovery
// pass.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/yairfalse/tutka/discovery"
	"github.com/yairfalse/tutka/types"
)

// Summary styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// TypeCount is the per-type tally of one run.
type TypeCount struct {
	Type        string
	Total       int
	NoTelemetry int
}

// Count tallies the collected resources of one type.
func Count(typeName string, resources []types.Resource) TypeCount {
	c := TypeCount{Type: typeName, Total: len(resources)}
	for _, r := range resources {
		if r.NoTelemetryID {
			c.NoTelemetry++
		}
	}
	return c
}

// Summary is everything one run produced worth showing.
type Summary struct {
	Environments int
	Counts       []TypeCount
	Result       *discovery.Result
}

// Render writes the summary to w, normally stdout. Counts print in
// the order given, which is the catalog order of the run.
func Render(w io.Writer, s Summary) {
	fmt.Fprintln(w, titleStyle.Render("📊 Confluent Cloud discovery"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "   Environments: %d\n", s.Environments)
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("Resources"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "   TYPE\tCOLLECTED\tNO TELEMETRY ID")
	noTelemetry := 0
	for _, c := range s.Counts {
		fmt.Fprintf(tw, "   %s\t%d\t%d\n", c.Type, c.Total, c.NoTelemetry)
		noTelemetry += c.NoTelemetry
	}
	_ = tw.Flush()
	if noTelemetry > 0 {
		fmt.Fprintln(w, dimStyle.Render("   resources without a telemetry id never reach the target files"))
	}
	fmt.Fprintln(w)

	if s.Result == nil {
		return
	}

	fmt.Fprintln(w, sectionStyle.Render("Target files"))
	fmt.Fprintf(w, "   Written: %d\n", len(s.Result.Written))
	fmt.Fprintf(w, "   Deleted: %d\n", len(s.Result.Deleted))
	for _, name := range s.Result.Deleted {
		fmt.Fprintf(w, "   • removed %s\n", name)
	}
	fmt.Fprintln(w)
	for _, name := range s.Result.Files {
		fmt.Fprintf(w, "   %s\n", name)
	}
}
