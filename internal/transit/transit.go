// Package transit loads the precomputed stop and travel-time tables
// published by the transit-data collaborator.
package transit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quantpress/deskstat/pkg/deskstat/graph"
	"github.com/quantpress/deskstat/pkg/deskstat/internalerr"
)

var (
	stopHeader = []string{"stop_id", "name", "lat", "lon"}
	edgeHeader = []string{"from", "to", "travel_time", "route"}
)

// LoadStops reads the stop metadata table.
func LoadStops(path string) ([]graph.Node, error) {
	rows, err := readCSV(path, stopHeader)
	if err != nil {
		return nil, err
	}

	out := make([]graph.Node, 0, len(rows))
	for i, row := range rows {
		lat, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad lat %q: %w", path, i+2, row[2], internalerr.ErrStructural)
		}
		lon, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad lon %q: %w", path, i+2, row[3], internalerr.ErrStructural)
		}
		out = append(out, graph.Node{ID: row[0], Name: row[1], Lat: lat, Lon: lon})
	}
	return out, nil
}

// LoadEdges reads the travel-time edge table.
func LoadEdges(path string) ([]graph.Edge, error) {
	rows, err := readCSV(path, edgeHeader)
	if err != nil {
		return nil, err
	}

	out := make([]graph.Edge, 0, len(rows))
	for i, row := range rows {
		w, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad travel_time %q: %w", path, i+2, row[2], internalerr.ErrStructural)
		}
		out = append(out, graph.Edge{From: row[0], To: row[1], Weight: w, Route: row[3]})
	}
	return out, nil
}

// BuildGraph assembles the network from both tables.
func BuildGraph(stopsPath, edgesPath string) (*graph.Graph, error) {
	stops, err := LoadStops(stopsPath)
	if err != nil {
		return nil, err
	}
	edges, err := LoadEdges(edgesPath)
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder()
	for _, s := range stops {
		b.AddNode(s)
	}
	for _, e := range edges {
		if err := b.AddEdge(e); err != nil {
			return nil, fmt.Errorf("%s: %w", edgesPath, err)
		}
	}
	return b.Build(), nil
}

// readCSV reads a whole file and validates its header against the
// expected column names. A shifted or renamed column fails here, before
// any number parsing can misread data.
func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", path, internalerr.ErrStructural)
	}

	for i, want := range header {
		if got := strings.TrimSpace(strings.ToLower(records[0][i])); got != want {
			return nil, fmt.Errorf("%s: column %d is %q, want %q: %w",
				path, i+1, records[0][i], want, internalerr.ErrStructural)
		}
	}
	return records[1:], nil
}
