package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/session"
)

// PrintLayoutReport prints a colored summary of a laid out graph followed by
// node and edge tables. lr may be nil.
func PrintLayoutReport(w io.Writer, frame *session.Frame, lr *layout.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Fprintln(w, "Folia Viewer - Layout Report")
	bold.Fprintln(w, "============================")
	fmt.Fprintf(w, "Session: %s\n", frame.SessionID)
	cyan.Fprintf(w, "Graph type: %s\n", frame.GraphType)
	fmt.Fprintf(w, "Nodes: %d\n", len(frame.Nodes))
	fmt.Fprintf(w, "Edges: %d\n", len(frame.Edges))
	if frame.Skipped > 0 {
		yellow.Fprintf(w, "Skipped edges: %d (missing endpoints)\n", frame.Skipped)
	}
	if lr != nil {
		fmt.Fprintf(w, "Components: %d\n", len(lr.Components))
		fmt.Fprintf(w, "Solver iterations: %d\n", lr.Iterations)
		fmt.Fprintf(w, "Collision passes: %d\n", lr.CollisionPasses)
		fmt.Fprintf(w, "Duration: %s\n", lr.Duration)
	}
	fmt.Fprintf(w, "Viewport: pan=(%.1f, %.1f) scale=%.2f\n", frame.Viewport.PanX, frame.Viewport.PanY, frame.Viewport.Scale)
	fmt.Fprintln(w)

	nodes := table.NewWriter()
	nodes.SetOutputMirror(w)
	nodes.SetStyle(table.StyleLight)
	nodes.AppendHeader(table.Row{"ID", "Title", "Type", "X", "Y"})
	for _, n := range frame.Nodes {
		nodes.AppendRow(table.Row{n.ID, n.Title, n.EntityType, fmt.Sprintf("%.1f", n.X), fmt.Sprintf("%.1f", n.Y)})
	}
	nodes.Render()
	fmt.Fprintln(w)

	if len(frame.Edges) > 0 {
		edges := table.NewWriter()
		edges.SetOutputMirror(w)
		edges.SetStyle(table.StyleLight)
		edges.AppendHeader(table.Row{"Source", "Target", "Relationship", "Length"})
		for _, e := range frame.Edges {
			edges.AppendRow(table.Row{e.Source, e.Target, e.Label, fmt.Sprintf("%.1f", e.Line.Length)})
		}
		edges.Render()
		fmt.Fprintln(w)
	}

	if frame.Skipped == 0 {
		green.Fprintf(w, "✓ Laid out %d nodes\n", len(frame.Nodes))
	} else {
		yellow.Fprintf(w, "Laid out %d nodes, %d edge(s) skipped\n", len(frame.Nodes), frame.Skipped)
	}
}

// PrintStatus prints a load status that produced no frame.
func PrintStatus(w io.Writer, st pubsub.GraphStatus) {
	c := color.New(color.FgYellow)
	if st.State == "error" {
		c = color.New(color.FgRed)
	}
	c.Fprintf(w, "%s: %s\n", st.State, st.Message)
}
