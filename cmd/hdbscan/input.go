package main

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	hdbscan "github.com/TrevorS/hdbscanstar"
	"github.com/cockroachdb/errors"
)

// readDataset parses numeric CSV rows. Every row must have the same number
// of columns; with header, the first row is skipped.
func readDataset(r io.Reader, header bool) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV")
	}
	if header && len(records) > 0 {
		records = records[1:]
	}

	data := make([][]float64, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %d", i+1, j+1)
			}
			row[j] = v
		}
		data[i] = row
	}
	return data, nil
}

// parseConstraints turns "a,b" pairs of point indices into constraints.
func parseConstraints(pairs []string, kind hdbscan.ConstraintKind) ([]hdbscan.Constraint, error) {
	constraints := make([]hdbscan.Constraint, 0, len(pairs))
	for _, pair := range pairs {
		a, b, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, errors.WithHint(
				errors.Newf("invalid %s constraint %q", kind, pair),
				"constraints are two point indices separated by a comma, e.g. 0,5")
		}
		pointA, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s constraint %q", kind, pair)
		}
		pointB, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s constraint %q", kind, pair)
		}
		constraints = append(constraints, hdbscan.Constraint{PointA: pointA, PointB: pointB, Kind: kind})
	}
	return constraints, nil
}

// parseMetric maps a metric name to a dense metric.
func parseMetric(name string) (hdbscan.DistanceMetric, error) {
	switch strings.ToLower(name) {
	case "euclidean", "":
		return hdbscan.EuclideanMetric{}, nil
	case "manhattan":
		return hdbscan.ManhattanMetric{}, nil
	case "supremum", "chebyshev":
		return hdbscan.SupremumMetric{}, nil
	case "cosine":
		return hdbscan.CosineMetric{}, nil
	case "pearson":
		return hdbscan.PearsonMetric{}, nil
	default:
		return nil, errors.WithHint(
			errors.Newf("unknown metric %q", name),
			"use euclidean, manhattan, supremum, cosine or pearson")
	}
}
