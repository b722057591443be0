// ABOUTME: Sync topology visualisation using graphviz
// ABOUTME: Renders calendars as nodes and sync configs as directed edges
package viz

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

// CalendarNames maps calendar ids to display names for node labels.
// Missing entries fall back to the raw id.
type CalendarNames map[string]string

// NamesFromCalendars builds the label map from fetched calendar lists.
func NamesFromCalendars(lists ...[]models.CalendarSummary) CalendarNames {
	names := make(CalendarNames)
	for _, list := range lists {
		for _, cal := range list {
			names[cal.ID] = cal.DisplayName()
		}
	}
	return names
}

func (n CalendarNames) label(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id
}

// GenerateTopologyDOT renders the grouped config view as a DOT graph:
// one node per calendar, one edge per one-way config, and a single
// double-headed edge per anchored bidirectional pair.
func GenerateTopologyDOT(grouped sync.Grouped, names CalendarNames) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLabel("Calendar Sync Topology")
	graph.SetRankDir(cgraph.LRRank)

	nodes := make(map[string]*cgraph.Node)
	node := func(calendarID string) (*cgraph.Node, error) {
		if n, ok := nodes[calendarID]; ok {
			return n, nil
		}
		n, err := graph.CreateNodeByName(names.label(calendarID))
		if err != nil {
			return nil, fmt.Errorf("failed to create node for %s: %w", calendarID, err)
		}
		n.SetShape(cgraph.BoxShape)
		nodes[calendarID] = n
		return n, nil
	}

	for _, config := range grouped.OneWay {
		src, err := node(config.SourceCalendarID)
		if err != nil {
			return "", err
		}
		dst, err := node(config.DestCalendarID)
		if err != nil {
			return "", err
		}

		edge, err := graph.CreateEdgeByName(config.ID, src, dst)
		if err != nil {
			return "", fmt.Errorf("failed to create edge for %s: %w", config.ID, err)
		}
		edge.SetLabel(edgeLabel(config))
	}

	for _, pair := range grouped.AnchoredPairs() {
		forward := pair.Forward
		src, err := node(forward.SourceCalendarID)
		if err != nil {
			return "", err
		}
		dst, err := node(forward.DestCalendarID)
		if err != nil {
			return "", err
		}

		edge, err := graph.CreateEdgeByName(pair.Key, src, dst)
		if err != nil {
			return "", fmt.Errorf("failed to create edge for pair %s: %w", pair.Key, err)
		}
		edge.SetLabel(edgeLabel(*forward))
		if pair.IsOrphan() {
			// Half of a pair: draw the surviving leg like a one-way edge.
			edge.SetStyle("dashed")
		} else {
			edge.SetDir("both")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

// RenderTopologyPNG writes the topology graph as a PNG file.
func RenderTopologyPNG(grouped sync.Grouped, names CalendarNames, path string) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	dot, err := GenerateTopologyDOT(grouped, names)
	if err != nil {
		return err
	}

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("failed to parse generated graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := gv.Render(ctx, graph, graphviz.PNG, f); err != nil {
		return fmt.Errorf("failed to render PNG: %w", err)
	}
	return nil
}

func edgeLabel(config models.SyncConfig) string {
	label := fmt.Sprintf("%dd", config.SyncLookaheadDays)
	if config.DestinationColorID != "" {
		label += " / " + colors.ResolveName(config.DestinationColorID)
	}
	if config.PrivacyModeEnabled {
		label += " / private"
	}
	return label
}
