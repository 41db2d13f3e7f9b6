// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/tree"
)

// fakeNode is a minimal in-memory hierarchy node.
type fakeNode struct {
	id     int
	name   string
	slug   string
	parent *int
}

func (n *fakeNode) TreeID() int        { return n.id }
func (n *fakeNode) TreeParentID() *int { return n.parent }

// forest builds a Lookup over a set of nodes keyed by ID.
func forest(nodes ...*fakeNode) tree.Lookup[*fakeNode] {
	byID := map[int]*fakeNode{}
	for _, n := range nodes {
		byID[n.id] = n
	}
	return func(_ context.Context, id int) (*fakeNode, error) {
		n, ok := byID[id]
		if !ok {
			return nil, apperr.NotFound("Node")
		}
		return n, nil
	}
}

func ptr(v int) *int { return &v }

func TestResolveParent(t *testing.T) {
	assert.Nil(t, tree.ResolveParent(nil))
	assert.Nil(t, tree.ResolveParent(ptr(-1)))

	resolved := tree.ResolveParent(ptr(7))
	require.NotNil(t, resolved)
	assert.Equal(t, 7, *resolved)
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "du-lich-ha-long", tree.NormalizeSlug("  Du-Lich-Ha-Long "))
	assert.Equal(t, "", tree.NormalizeSlug("   "))
}

/*
TestIsDescendantOf covers the re-parenting cycle guard with the canonical
three-node chain A → B → C (C's parent is B, B's parent is A).
*/
func TestIsDescendantOf(t *testing.T) {
	lookup := forest(
		&fakeNode{id: 1, name: "A"},
		&fakeNode{id: 2, name: "B", parent: ptr(1)},
		&fakeNode{id: 3, name: "C", parent: ptr(2)},
	)
	ctx := context.Background()

	tests := []struct {
		name     string
		start    int
		ancestor int
		want     bool
	}{
		{"direct_child", 2, 1, true},
		{"grandchild", 3, 1, true},
		{"inverse_direction", 1, 3, false},
		{"sibling_of_nothing", 1, 2, false},
		{"missing_start", 99, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.IsDescendantOf(ctx, lookup, tt.start, tt.ancestor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestIsDescendantOf_DepthBound verifies the walk gives up past MaxDepth hops.

A chain of 12 nodes is built (1 ← 2 ← ... ← 12). Starting from the deepest
node, ancestry within 10 hops is detected; the true root sits beyond the
bound and is reported as unrelated.
*/
func TestIsDescendantOf_DepthBound(t *testing.T) {
	nodes := []*fakeNode{{id: 1, name: "root"}}
	for id := 2; id <= 12; id++ {
		nodes = append(nodes, &fakeNode{id: id, parent: ptr(id - 1)})
	}
	lookup := forest(nodes...)
	ctx := context.Background()

	// Node 2 is 10 hops above node 12: still inside the bound.
	inRange, err := tree.IsDescendantOf(ctx, lookup, 12, 2)
	require.NoError(t, err)
	assert.True(t, inRange)

	// The root is 11 hops up: beyond the bound, treated as unrelated.
	beyond, err := tree.IsDescendantOf(ctx, lookup, 12, 1)
	require.NoError(t, err)
	assert.False(t, beyond)
}

func TestBreadcrumb(t *testing.T) {
	lookup := forest(
		&fakeNode{id: 1, name: "Asia", slug: "asia"},
		&fakeNode{id: 2, name: "Vietnam", slug: "vietnam", parent: ptr(1)},
		&fakeNode{id: 3, name: "Ha Long", slug: "ha-long", parent: ptr(2)},
	)
	ctx := context.Background()

	toCrumb := func(n *fakeNode) tree.Crumb {
		return tree.Crumb{ID: n.id, Name: n.name, Slug: n.slug}
	}

	t.Run("root_first_order", func(t *testing.T) {
		crumbs, err := tree.Breadcrumb(ctx, lookup, 3, toCrumb)
		require.NoError(t, err)
		require.Len(t, crumbs, 3)
		assert.Equal(t, "Asia", crumbs[0].Name)
		assert.Equal(t, "Vietnam", crumbs[1].Name)
		assert.Equal(t, "Ha Long", crumbs[2].Name)
	})

	t.Run("root_node_is_single_crumb", func(t *testing.T) {
		crumbs, err := tree.Breadcrumb(ctx, lookup, 1, toCrumb)
		require.NoError(t, err)
		require.Len(t, crumbs, 1)
		assert.Equal(t, "asia", crumbs[0].Slug)
	})

	t.Run("missing_node_errors", func(t *testing.T) {
		_, err := tree.Breadcrumb(ctx, lookup, 42, toCrumb)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("dangling_parent_truncates", func(t *testing.T) {
		broken := forest(&fakeNode{id: 5, name: "Orphan", slug: "orphan", parent: ptr(404)})
		crumbs, err := tree.Breadcrumb(ctx, broken, 5, toCrumb)
		require.NoError(t, err)
		require.Len(t, crumbs, 1)
		assert.Equal(t, "Orphan", crumbs[0].Name)
	})
}

/*
TestBreadcrumb_DepthBound verifies the trail is truncated to MaxDepth
ancestors above the starting node.
*/
func TestBreadcrumb_DepthBound(t *testing.T) {
	nodes := []*fakeNode{{id: 1, name: "root", slug: "root"}}
	for id := 2; id <= 13; id++ {
		nodes = append(nodes, &fakeNode{id: id, parent: ptr(id - 1)})
	}
	lookup := forest(nodes...)

	crumbs, err := tree.Breadcrumb(context.Background(), lookup, 13, func(n *fakeNode) tree.Crumb {
		return tree.Crumb{ID: n.id, Name: n.name, Slug: n.slug}
	})
	require.NoError(t, err)

	// Starting node + at most 10 ancestors.
	assert.Len(t, crumbs, 11)
	assert.Equal(t, 13, crumbs[len(crumbs)-1].ID)
}
