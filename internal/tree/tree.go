// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

/*
Package tree implements the shared hierarchy logic for self-referential
category structures (blog categories, tour categories, destinations).

Each family stores an adjacency list: every node carries an optional parent
reference. This package centralizes the rules that must behave identically
across all families:

  - Parent sentinel resolution: clients send -1 (or omit the field) to mean
    "root level"; storage uses NULL.
  - Cycle prevention: a node may never select itself or one of its own
    descendants as parent.
  - Breadcrumb assembly: the root-first ancestor path of a node.

All ancestor walks are bounded by [MaxDepth] so a corrupted parent chain can
never hang a request.
*/
package tree

import (
	"context"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
)

const (
	// MaxDepth is the maximum number of parent hops any hierarchy walk will
	// follow. Chains deeper than this are treated as exhausted, not as errors.
	MaxDepth = 10

	// RootSentinel is the client-side marker for "no parent".
	RootSentinel = -1
)

// Node is the minimal contract a hierarchical entity must satisfy.
type Node interface {
	// TreeID returns the node's primary key.
	TreeID() int
	// TreeParentID returns the parent's primary key, or nil for root nodes.
	TreeParentID() *int
}

// Lookup fetches a single active node by ID. Implementations must return a
// NOT_FOUND [apperr.AppError] (or wrap one) when the node does not exist or
// has been soft-deleted.
type Lookup[N Node] func(context context.Context, id int) (N, error)

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ResolveParent maps the client parent reference to its storage form.
// Both nil and the -1 sentinel mean "root level" and resolve to nil.
func ResolveParent(parentID *int) *int {
	if parentID == nil || *parentID == RootSentinel {
		return nil
	}
	return parentID
}

// NormalizeSlug returns the canonical storage form of a slug:
// surrounding whitespace removed and all characters lowercased.
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

/*
IsDescendantOf reports whether the node startID sits anywhere underneath
ancestorID, following at most [MaxDepth] parent hops.

Used for cycle prevention on re-parenting: moving node X under node P is
illegal when P is a descendant of X. A walk that reaches a root, a missing
node, or the depth bound without encountering ancestorID reports false.
*/
func IsDescendantOf[N Node](context context.Context, lookup Lookup[N], startID, ancestorID int) (bool, error) {
	currentID := startID

	for depth := 0; depth < MaxDepth; depth++ {
		node, err := lookup(context, currentID)
		if err != nil {
			// A dangling parent reference terminates the walk.
			if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
				return false, nil
			}
			return false, err
		}

		parentID := node.TreeParentID()
		if parentID == nil {
			return false, nil
		}
		if *parentID == ancestorID {
			return true, nil
		}

		currentID = *parentID
	}

	// Depth bound exhausted without a match.
	return false, nil
}

/*
Breadcrumb builds the root-first ancestor trail for a node, the node itself
included as the last entry.

The walk follows at most [MaxDepth] ancestor hops above the starting node;
deeper ancestry is silently truncated. A missing starting node returns the
store's NOT_FOUND error; a dangling ancestor reference merely ends the trail.
*/
func Breadcrumb[N Node](context context.Context, lookup Lookup[N], id int, toCrumb func(N) Crumb) ([]Crumb, error) {
	node, err := lookup(context, id)
	if err != nil {
		return nil, err
	}

	crumbs := []Crumb{toCrumb(node)}

	parentID := node.TreeParentID()
	for depth := 0; depth < MaxDepth && parentID != nil; depth++ {
		parent, err := lookup(context, *parentID)
		if err != nil {
			if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
				break
			}
			return nil, err
		}

		// Prepend so the trail reads root → ... → node.
		crumbs = append([]Crumb{toCrumb(parent)}, crumbs...)
		parentID = parent.TreeParentID()
	}

	return crumbs, nil
}
