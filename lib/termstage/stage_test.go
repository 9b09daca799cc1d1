// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package termstage

import (
	"strings"
	"testing"
	"time"

	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/viewer"
)

func testStructure() *pdb.Structure {
	return &pdb.Structure{
		ID: "TEST",
		Chains: []pdb.Chain{
			{
				ID: "A",
				Residues: []pdb.Residue{
					{
						Name: "ALA", Number: 1, Chain: "A",
						Atoms: []pdb.Atom{
							{Serial: 1, Name: "CA", Element: "C", ResidueName: "ALA", ResidueNumber: 1, Chain: "A", Position: pdb.Vec3{X: -5}},
							{Serial: 2, Name: "CB", Element: "C", ResidueName: "ALA", ResidueNumber: 1, Chain: "A", Position: pdb.Vec3{X: -5, Y: 2}},
						},
					},
					{
						Name: "GLY", Number: 2, Chain: "A",
						Atoms: []pdb.Atom{
							{Serial: 3, Name: "CA", Element: "C", ResidueName: "GLY", ResidueNumber: 2, Chain: "A", Position: pdb.Vec3{X: 5}},
						},
					},
				},
			},
			{
				ID: "B",
				Residues: []pdb.Residue{
					{
						Name: "DA", Number: 10, Chain: "B",
						Atoms: []pdb.Atom{
							{Serial: 4, Name: "P", Element: "P", ResidueName: "DA", ResidueNumber: 10, Chain: "B", Position: pdb.Vec3{Y: -5}},
							{Serial: 5, Name: "N1", Element: "N", ResidueName: "DA", ResidueNumber: 10, Chain: "B", Position: pdb.Vec3{Y: -3}},
						},
					},
				},
			},
		},
	}
}

func proteinTraceSpec() viewer.RepresentationSpec {
	return viewer.RepresentationSpec{
		Config: render.Config{
			Geometry:    render.Backbone,
			ColorScheme: render.ColorByChain,
			Opacity:     1,
			Polymer:     render.PolymerProtein,
		},
		Selection: viewer.Selection{Polymer: render.PolymerProtein},
	}
}

func TestViewWithoutModelIsBlank(t *testing.T) {
	stage := New()
	view := stage.View(10, 4)

	if strings.TrimSpace(view) != "" {
		t.Errorf("empty stage should render blank, got %q", view)
	}
	if got := strings.Count(view, "\n"); got != 3 {
		t.Errorf("expected 4 lines, got %d newlines", got)
	}
}

func TestViewIsDeterministic(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	stage.AddRepresentation(proteinTraceSpec())

	first := stage.View(40, 12)
	second := stage.View(40, 12)
	if first != second {
		t.Error("identical camera and overlays must render identical frames")
	}
}

func TestRepresentationDrawsAndRemoveErases(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())

	handle := stage.AddRepresentation(proteinTraceSpec())
	drawn := stage.View(40, 12)
	if strings.TrimSpace(drawn) == "" {
		t.Fatal("expected braille output for the protein trace")
	}

	stage.Remove(handle)
	erased := stage.View(40, 12)
	if strings.TrimSpace(erased) != "" {
		t.Errorf("removed representation still visible: %q", erased)
	}
}

func TestRemoveUnknownHandleIsIgnored(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	stage.Remove(viewer.Handle(42))
	stage.Remove(0)
}

func TestLabelTextAppearsInFrame(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	stage.AddLabel(viewer.LabelSpec{
		Text:     "p.Arg177Trp",
		Color:    "#ff0000",
		Position: pdb.Vec3{},
	})

	view := stage.View(40, 12)
	if !strings.Contains(view, "p.Arg177Trp") {
		t.Error("label text missing from the frame")
	}
}

func TestDistanceLineCarriesLabel(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	stage.AddDistance(viewer.DistanceSpec{
		From:   pdb.Vec3{X: -5},
		To:     pdb.Vec3{X: 5},
		Label:  "10.0 Å",
		Color:  "#ff4444",
		Dashed: true,
	})

	view := stage.View(40, 12)
	if !strings.Contains(view, "10.0 Å") {
		t.Error("distance label missing from the frame")
	}
}

func TestNucleicSelectionOnlyDrawsReferencePolymer(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	handle := stage.AddRepresentation(viewer.RepresentationSpec{
		Config: render.Config{
			Geometry:    render.Cartoon,
			ColorScheme: render.ColorByResidueIndex,
			Opacity:     1,
			Polymer:     render.PolymerNucleic,
		},
		Selection: viewer.Selection{Polymer: render.PolymerNucleic},
	})

	view := stage.View(40, 12)
	if strings.TrimSpace(view) == "" {
		t.Fatal("expected the nucleic residue to draw")
	}

	stage.Remove(handle)
	if strings.TrimSpace(stage.View(40, 12)) != "" {
		t.Error("nucleic overlay not erased")
	}
}

func TestFocusOnZoomsSelectionCentroid(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())

	stage.FocusOn(viewer.Selection{
		Polymer:  render.PolymerProtein,
		Chain:    "A",
		Residues: []int{1},
	}, time.Second)

	if stage.zoom != focusZoom {
		t.Errorf("zoom = %v, want %v", stage.zoom, focusZoom)
	}
	if stage.center.X != -5 || stage.center.Y != 1 {
		t.Errorf("center = %+v, want the residue centroid (-5, 1, 0)", stage.center)
	}

	stage.ResetCamera(time.Second)
	if stage.zoom != 1 {
		t.Errorf("zoom after reset = %v, want 1", stage.zoom)
	}
	if stage.center != stage.modelCenter {
		t.Errorf("center after reset = %+v, want model centroid %+v", stage.center, stage.modelCenter)
	}
}

func TestFocusOnEmptySelectionKeepsCamera(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())

	before := stage.center
	stage.FocusOn(viewer.Selection{Chain: "Z", Polymer: render.PolymerProtein}, 0)
	if stage.center != before || stage.zoom != 1 {
		t.Error("focus on an empty selection must not move the camera")
	}
}

func TestRotateClampsPitch(t *testing.T) {
	stage := New()
	stage.Rotate(0, 10)
	if stage.pitch >= 1.58 {
		t.Errorf("pitch %v not clamped below the pole", stage.pitch)
	}
	stage.Rotate(0, -20)
	if stage.pitch <= -1.58 {
		t.Errorf("pitch %v not clamped above the pole", stage.pitch)
	}
}

func TestZoomByClamps(t *testing.T) {
	stage := New()
	stage.ZoomBy(1e-6)
	if stage.zoom < 0.2 {
		t.Errorf("zoom %v below the floor", stage.zoom)
	}
	stage.ZoomBy(1e9)
	if stage.zoom > 20 {
		t.Errorf("zoom %v above the ceiling", stage.zoom)
	}
}

func TestRotationChangesFrame(t *testing.T) {
	stage := New()
	stage.SetModel(testStructure())
	stage.AddRepresentation(proteinTraceSpec())

	before := stage.View(40, 12)
	stage.Rotate(1.2, 0.4)
	after := stage.View(40, 12)
	if before == after {
		t.Error("rotating the camera should change the frame")
	}
}

func TestIndexGradientEndpoints(t *testing.T) {
	if got := indexGradient(0); got != "#3060e0" {
		t.Errorf("gradient start = %q", got)
	}
	if got := indexGradient(1); got != "#e06030" {
		t.Errorf("gradient end = %q", got)
	}
	if got := indexGradient(-3); got != indexGradient(0) {
		t.Errorf("gradient must clamp below 0, got %q", got)
	}
}
