package hdbscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintKind_String(t *testing.T) {
	assert.Equal(t, "must-link", MustLink.String())
	assert.Equal(t, "cannot-link", CannotLink.String())
	assert.Equal(t, "ConstraintKind(7)", ConstraintKind(7).String())
}

func TestValidateConstraints(t *testing.T) {
	tests := []struct {
		name        string
		constraints []Constraint
		wantErr     bool
	}{
		{"none", nil, false},
		{"valid", []Constraint{{0, 2, MustLink}, {1, 1, CannotLink}}, false},
		{"zero kind", []Constraint{{0, 1, 0}}, true},
		{"unknown kind", []Constraint{{0, 1, 3}}, true},
		{"negative point", []Constraint{{-1, 1, MustLink}}, true},
		{"point past end", []Constraint{{0, 3, CannotLink}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConstraints(tt.constraints, 3)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConstraint)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCountConstraints_MustLink(t *testing.T) {
	h := buildHierarchy(nestedLine(), 2, 3, []Constraint{{0, 3, MustLink}}, true)

	// Credited once to the root and once to {0..5}; the split at 4
	// separates the points.
	assert.Equal(t, 2, h.Tree.Root().ConstraintsSatisfied())
	assert.Equal(t, 2, h.Tree.Get(2).ConstraintsSatisfied())
	assert.Zero(t, h.Tree.Get(3).ConstraintsSatisfied())
	assert.Zero(t, h.Tree.Get(4).ConstraintsSatisfied())
	assert.Zero(t, h.Tree.Get(5).ConstraintsSatisfied())
}

func TestCountConstraints_CannotLinkAcrossClusters(t *testing.T) {
	constraints := []Constraint{{0, 3, MustLink}, {0, 6, CannotLink}}
	h := buildHierarchy(nestedLine(), 2, 3, constraints, true)

	assert.Equal(t, 2, h.Tree.Root().ConstraintsSatisfied())
	assert.Equal(t, 3, h.Tree.Get(2).ConstraintsSatisfied())
	assert.Equal(t, 1, h.Tree.Get(3).ConstraintsSatisfied())
	assert.Equal(t, 1, h.Tree.Get(4).ConstraintsSatisfied())
	assert.Zero(t, h.Tree.Get(5).ConstraintsSatisfied())
}

func TestCountConstraints_CannotLinkWithNoise(t *testing.T) {
	for _, selfEdges := range []bool{true, false} {
		h := buildHierarchy(lineSource(0, 1, 2, 10, 11, 12, 40), 2, 3,
			[]Constraint{{0, 6, CannotLink}}, selfEdges)

		// Point 6 left the root as noise before {0,1,2} was born: the
		// cluster gets its side, the root's virtual child the other.
		assert.Equal(t, 1, h.Tree.Get(2).ConstraintsSatisfied(), "self edges %v", selfEdges)
		assert.Zero(t, h.Tree.Get(3).ConstraintsSatisfied(), "self edges %v", selfEdges)
		assert.Equal(t, 1, h.Tree.Root().propagatedNumConstraintsSatisfied, "self edges %v", selfEdges)
		assert.False(t, h.Tree.Root().virtualChildContains(6), "virtual child is released")
	}
}

func TestCountConstraints_NoConstraintsSkipsVirtualChildren(t *testing.T) {
	h := buildHierarchy(lineSource(0, 1, 2, 10, 11, 12, 40), 2, 3, nil, true)
	for _, c := range h.Tree.Clusters() {
		assert.Nil(t, c.virtualChild, "cluster %d", c.Label)
		assert.Zero(t, c.ConstraintsSatisfied())
	}
}

func TestCountConstraints_SelectionFollowsConstraints(t *testing.T) {
	h := buildHierarchy(nestedLine(), 2, 3, []Constraint{{0, 3, MustLink}}, true)
	PropagateTree(h.Tree)

	// {0..5} satisfies the must-link, its children do not.
	root := h.Tree.Root()
	assert.ElementsMatch(t, []int{2, 3}, root.PropagatedDescendants)
	assert.Equal(t, 2, root.propagatedNumConstraintsSatisfied)

	labels := FindProminentClusters(h.Tree, h.Levels, 9)
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2, 3, 3, 3}, labels)
}

func TestCountConstraints_PropagatedTotals(t *testing.T) {
	constraints := []Constraint{{0, 3, MustLink}, {0, 6, CannotLink}}
	h := buildHierarchy(nestedLine(), 2, 3, constraints, true)
	PropagateTree(h.Tree)

	assert.Equal(t, 1, h.Tree.Get(2).propagatedNumConstraintsSatisfied)
	assert.Equal(t, 4, h.Tree.Root().propagatedNumConstraintsSatisfied)

	h = buildHierarchy(lineSource(0, 1, 2, 10, 11, 12, 40), 2, 3, []Constraint{{0, 6, CannotLink}}, true)
	PropagateTree(h.Tree)
	require.NotNil(t, h.Tree.Root())
	assert.Equal(t, 2, h.Tree.Root().propagatedNumConstraintsSatisfied)
}
