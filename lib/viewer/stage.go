// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"time"

	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/render"
)

// Handle identifies one visual addition on a Stage. Handles are
// opaque and never reused within a session. The zero value means
// "nothing".
type Handle uint64

// Selection names a subset of the loaded structure.
type Selection struct {
	// Polymer restricts the selection to one polymer class.
	Polymer render.PolymerClass

	// Chain restricts the selection to one chain. Empty means all
	// chains of the polymer class.
	Chain string

	// Residues restricts the selection to specific sequence numbers
	// on Chain. Empty means every residue of the selected chain and
	// polymer class.
	Residues []int
}

// RepresentationSpec describes one structural representation:
// geometry, coloring and opacity from the merged render config, drawn
// over the selected atoms.
type RepresentationSpec struct {
	Config    render.Config
	Selection Selection
}

// LabelSpec describes one text label anchored at a coordinate.
type LabelSpec struct {
	Text     string
	Color    string
	Position pdb.Vec3
}

// DistanceSpec describes one measurement line between two
// coordinates, labeled with the formatted distance.
type DistanceSpec struct {
	From   pdb.Vec3
	To     pdb.Vec3
	Label  string
	Color  string
	Dashed bool
}

// Stage is the rendering boundary: the 3D drawing surface the Viewer
// issues commands to. Implementations own geometry generation, camera
// handling and compositing; the Viewer only tracks which handles are
// alive.
//
// Stage methods are called from the Viewer's single logical thread
// and must not be shared across goroutines.
type Stage interface {
	// SetModel installs the loaded structure. Called once per
	// session, before any Add call.
	SetModel(structure *pdb.Structure)

	// AddRepresentation draws a structural representation and
	// returns its handle.
	AddRepresentation(spec RepresentationSpec) Handle

	// AddLabel draws a text label and returns its handle.
	AddLabel(spec LabelSpec) Handle

	// AddDistance draws a measurement line and returns its handle.
	AddDistance(spec DistanceSpec) Handle

	// Remove deletes the visual addition behind the handle. Unknown
	// or zero handles are ignored.
	Remove(handle Handle)

	// FocusOn recenters and zooms the camera onto the selection over
	// the given transition duration.
	FocusOn(selection Selection, duration time.Duration)

	// ResetCamera recenters the camera on the whole structure over
	// the given transition duration.
	ResetCamera(duration time.Duration)
}

// StructureLoader fetches and parses one structure by archive
// identifier. Implemented by rcsb.Client and wrapped by
// structcache.Cache.
type StructureLoader interface {
	Load(ctx context.Context, id string) (*pdb.Structure, error)
}
