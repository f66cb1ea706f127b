package hdbscan

import (
	"fmt"
	"slices"
)

// ConstraintKind is the kind of a semi-supervised constraint.
type ConstraintKind int

const (
	// MustLink asks for both points to share a cluster.
	MustLink ConstraintKind = iota + 1
	// CannotLink asks for the points to be in different clusters, or noise.
	CannotLink
)

func (k ConstraintKind) String() string {
	switch k {
	case MustLink:
		return "must-link"
	case CannotLink:
		return "cannot-link"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}
}

// Constraint is a must-link or cannot-link hint between two points. Satisfied
// constraints take precedence over stability when selecting clusters.
type Constraint struct {
	PointA int
	PointB int
	Kind   ConstraintKind
}

func validateConstraints(constraints []Constraint, numPoints int) error {
	for i, c := range constraints {
		if c.Kind != MustLink && c.Kind != CannotLink {
			return wrapf(ErrInvalidConstraint, "hdbscan: constraint %d has invalid kind %d", i, int(c.Kind))
		}
		if c.PointA < 0 || c.PointA >= numPoints || c.PointB < 0 || c.PointB >= numPoints {
			return wrapf(ErrInvalidConstraint,
				"hdbscan: constraint %d (%d, %d) references a point outside [0, %d)",
				i, c.PointA, c.PointB, numPoints)
		}
	}
	return nil
}

// countConstraints credits the clusters in newLabels with the constraints
// their points satisfy under labels:
//
//   - a must-link inside one new cluster counts 2 for it;
//   - a cannot-link across different labels counts 1 for each new side;
//   - a cannot-link side that is noise counts 1 for the propagated total of
//     the first parent of a new cluster whose virtual child holds the point.
//
// The parents' virtual children are released afterwards.
func countConstraints(tree *ClusterTree, newLabels []int, constraints []Constraint, labels []int) {
	if len(constraints) == 0 {
		return
	}

	isNew := make(map[int]bool, len(newLabels))
	var parents []*ClusterNode
	for _, label := range newLabels {
		isNew[label] = true
		parent := tree.Get(tree.Get(label).Parent)
		if parent != nil && !slices.Contains(parents, parent) {
			parents = append(parents, parent)
		}
	}

	creditNoise := func(point int) {
		for _, parent := range parents {
			if parent.virtualChildContains(point) {
				parent.propagatedNumConstraintsSatisfied++
				return
			}
		}
	}

	for _, c := range constraints {
		labelA, labelB := labels[c.PointA], labels[c.PointB]

		switch {
		case c.Kind == MustLink && labelA == labelB:
			if isNew[labelA] {
				tree.Get(labelA).numConstraintsSatisfied += 2
			}
		case c.Kind == CannotLink && (labelA != labelB || labelA == 0):
			if labelA != 0 && isNew[labelA] {
				tree.Get(labelA).numConstraintsSatisfied++
			}
			if labelB != 0 && isNew[labelB] {
				tree.Get(labelB).numConstraintsSatisfied++
			}
			if labelA == 0 {
				creditNoise(c.PointA)
			}
			if labelB == 0 {
				creditNoise(c.PointB)
			}
		}
	}

	for _, parent := range parents {
		parent.releaseVirtualChild()
	}
}
