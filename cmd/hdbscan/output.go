package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"

	hdbscan "github.com/TrevorS/hdbscanstar"
	"github.com/pterm/pterm"
)

type jsonReport struct {
	Labels            []int         `json:"labels"`
	Groups            []jsonGroup   `json:"groups"`
	Outliers          []jsonOutlier `json:"outliers"`
	InfiniteStability bool          `json:"infinite_stability"`
}

type jsonGroup struct {
	Label  int   `json:"label"`
	Points []int `json:"points"`
}

type jsonOutlier struct {
	Point int `json:"point"`
	// Non-finite values are encoded as null.
	Score        *float64 `json:"score"`
	CoreDistance *float64 `json:"core_distance"`
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// topOutliers returns up to n scores, most outlying first.
func topOutliers(scores []hdbscan.OutlierScore, n int) []hdbscan.OutlierScore {
	n = max(0, min(n, len(scores)))
	top := slices.Clone(scores[len(scores)-n:])
	slices.Reverse(top)
	return top
}

// sortedGroups returns the groups of r by ascending label, noise first.
func sortedGroups(r *hdbscan.Result) []jsonGroup {
	groups := r.Groups()
	out := make([]jsonGroup, 0, len(groups))
	for _, label := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, jsonGroup{Label: label, Points: groups[label]})
	}
	return out
}

func writeJSON(w io.Writer, r *hdbscan.Result, top int) error {
	report := jsonReport{
		Labels:            r.Labels,
		Groups:            sortedGroups(r),
		Outliers:          []jsonOutlier{},
		InfiniteStability: r.HasInfiniteStability,
	}
	for _, s := range topOutliers(r.OutlierScores, top) {
		report.Outliers = append(report.Outliers, jsonOutlier{
			Point:        s.Point,
			Score:        finite(s.Score),
			CoreDistance: finite(s.CoreDistance),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTables(w io.Writer, r *hdbscan.Result, top int) error {
	groups := pterm.TableData{{"Label", "Size", "Stability", "Points"}}
	for _, g := range sortedGroups(r) {
		stability := "-"
		if s, ok := r.Stabilities[g.Label]; ok {
			stability = strconv.FormatFloat(s, 'g', 6, 64)
		}
		name := strconv.Itoa(g.Label)
		if g.Label == 0 {
			name = "noise"
		}
		groups = append(groups, []string{name, strconv.Itoa(len(g.Points)), stability, fmt.Sprint(g.Points)})
	}

	outliers := pterm.TableData{{"Point", "Score", "Core distance"}}
	for _, s := range topOutliers(r.OutlierScores, top) {
		outliers = append(outliers, []string{
			strconv.Itoa(s.Point),
			strconv.FormatFloat(s.Score, 'f', 4, 64),
			strconv.FormatFloat(s.CoreDistance, 'g', 6, 64),
		})
	}

	for _, table := range []pterm.TableData{groups, outliers} {
		out, err := pterm.DefaultTable.WithHasHeader().WithData(table).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	if r.HasInfiniteStability {
		_, err := fmt.Fprintln(w, pterm.Warning.Sprint("some clusters have infinite stability (duplicate points)"))
		return err
	}
	return nil
}
