// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/varscope/varscope/lib/distance"
	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/variant"
)

// Camera transition durations. The focus transition is deliberately
// fixed: a consistent glide reads better than a speed proportional to
// the jump.
const (
	focusTransition = 600 * time.Millisecond
	resetTransition = 400 * time.Millisecond
)

// surfaceOpacityClamp applies when switching to the surface geometry
// with a near-opaque opacity setting: an opaque surface would hide
// the reference polymer entirely.
const (
	nearOpaqueThreshold = 0.9
	surfaceOpacityClamp = 0.7
)

// Viewer owns the loaded structure and the overlay slots. One Viewer
// per session; all methods run on the single UI thread.
type Viewer struct {
	stage   Stage
	manager *render.Manager
	loader  StructureLoader
	logger  *slog.Logger

	// chain is the protein chain variants are located on.
	chain string

	structure *pdb.Structure
	resolved  map[int]bool

	// Overlay slots. A zero handle means the slot is empty. The
	// focus slot holds at most one highlight plus one label; the
	// distance slot holds any number of lines but is always cleared
	// as a whole.
	primary          Handle
	focusHighlight   Handle
	focusLabel       Handle
	distanceLines    []Handle
	referencePolymer Handle

	// showingAll distinguishes the batch distance-line mode from a
	// single measurement line for toggle bookkeeping.
	showingAll bool
}

// New returns a Viewer rendering through stage, reading
// representation settings from manager, and loading structures
// through loader. chain is the protein chain the variants annotate.
func New(stage Stage, manager *render.Manager, loader StructureLoader, chain string, logger *slog.Logger) *Viewer {
	return &Viewer{
		stage:   stage,
		manager: manager,
		loader:  loader,
		logger:  logger,
		chain:   chain,
	}
}

// Chain returns the protein chain identifier the viewer targets.
func (v *Viewer) Chain() string {
	return v.chain
}

// Structure returns the loaded structure, or nil before Load
// succeeds.
func (v *Viewer) Structure() *pdb.Structure {
	return v.structure
}

// Load fetches and parses the structure, installs it into the stage,
// builds the default protein representation per current settings, and
// fits the camera. Any error is fatal to session initialization:
// there is no retry, the caller surfaces a failure state.
func (v *Viewer) Load(ctx context.Context, structureID string) error {
	structure, err := v.loader.Load(ctx, structureID)
	if err != nil {
		return fmt.Errorf("loading structure %s: %w", structureID, err)
	}

	v.structure = structure
	v.resolved = structure.PolymerPositions(v.chain)
	v.stage.SetModel(structure)
	v.rebuildPrimary()
	v.stage.ResetCamera(resetTransition)

	v.logger.Info("structure loaded",
		"structure", structureID,
		"chains", len(structure.Chains),
		"atoms", structure.AtomCount(),
		"resolvedPositions", len(v.resolved))
	return nil
}

// ResolvedPositions returns the set of sequence positions with at
// least one polymer atom on the protein chain. Empty before a
// successful Load. Callers must not modify the returned map.
func (v *Viewer) ResolvedPositions() map[int]bool {
	if v.resolved == nil {
		return map[int]bool{}
	}
	return v.resolved
}

// FocusOnVariant highlights the variant's residue and labels it,
// replacing any previous focus. The highlight is an element-colored
// ball-and-stick rendering of just that residue with sidechains
// shown; the label sits at the residue's alpha carbon and carries the
// variant's classification color. The camera recenters on the
// residue.
func (v *Viewer) FocusOnVariant(item variant.Variant) {
	if v.structure == nil {
		return
	}
	v.clearFocus()

	selection := Selection{
		Polymer:  render.PolymerProtein,
		Chain:    v.chain,
		Residues: []int{item.Position},
	}

	scheme := render.ColorByElement
	sidechains := true
	config := v.manager.Config(render.BallAndStick, render.Patch{
		ColorScheme: &scheme,
		Sidechains:  &sidechains,
	})
	v.focusHighlight = v.stage.AddRepresentation(RepresentationSpec{
		Config:    config,
		Selection: selection,
	})

	if anchor := v.labelAnchor(item.Position); anchor != nil {
		v.focusLabel = v.stage.AddLabel(LabelSpec{
			Text:     item.Name,
			Color:    item.DisplayColor(),
			Position: *anchor,
		})
	}

	v.stage.FocusOn(selection, focusTransition)
}

// labelAnchor returns the position of the residue's alpha carbon,
// falling back to its first atom when no CA is modeled. Nil when the
// residue is absent.
func (v *Viewer) labelAnchor(position int) *pdb.Vec3 {
	residue := v.structure.Residue(v.chain, position)
	if residue == nil || len(residue.Atoms) == 0 {
		return nil
	}
	if ca := residue.Atom("CA"); ca != nil {
		return &ca.Position
	}
	return &residue.Atoms[0].Position
}

// ResetView clears the focus slot and recenters the camera on the
// whole structure. Distance lines are left alone; the UI's reset
// control combines this with ClearDistanceLines.
func (v *Viewer) ResetView() {
	if v.structure == nil {
		return
	}
	v.clearFocus()
	v.stage.ResetCamera(resetTransition)
}

// ShowDistanceLine draws a single dashed measurement line between the
// result's own atom and reference atom, clearing the entire distance
// slot first — including a previous "show all" batch.
func (v *Viewer) ShowDistanceLine(item variant.Variant, result *distance.Result) {
	if v.structure == nil || result == nil {
		return
	}
	v.ClearDistanceLines()

	handle := v.stage.AddDistance(DistanceSpec{
		From:   result.OwnAtom.Position,
		To:     result.ReferenceAtom.Position,
		Label:  FormatDistance(result.Distance),
		Color:  result.Category().Color(),
		Dashed: true,
	})
	v.distanceLines = append(v.distanceLines, handle)
}

// ToggleAllDistanceLines is the batch mode of the distance slot. If
// any line is showing (single or batch), it clears everything and
// returns false. Otherwise it draws one line per variant with a
// computed distance, colored by proximity category, and returns true.
// The returned bool drives the toggle control's label.
func (v *Viewer) ToggleAllDistanceLines(variants []variant.Variant, results distance.Results) bool {
	if v.structure == nil {
		return false
	}
	if len(v.distanceLines) > 0 {
		v.ClearDistanceLines()
		return false
	}

	for _, item := range variants {
		result := results[item.Position]
		if result == nil {
			continue
		}
		handle := v.stage.AddDistance(DistanceSpec{
			From:   result.OwnAtom.Position,
			To:     result.ReferenceAtom.Position,
			Label:  FormatDistance(result.Distance),
			Color:  result.Category().Color(),
			Dashed: true,
		})
		v.distanceLines = append(v.distanceLines, handle)
	}
	v.showingAll = true
	return true
}

// ShowingAllDistances reports whether the distance slot is in batch
// mode.
func (v *Viewer) ShowingAllDistances() bool {
	return v.showingAll && len(v.distanceLines) > 0
}

// ClearDistanceLines empties the whole distance slot, single line and
// batch alike.
func (v *Viewer) ClearDistanceLines() {
	for _, handle := range v.distanceLines {
		v.stage.Remove(handle)
	}
	v.distanceLines = nil
	v.showingAll = false
}

// ToggleReferencePolymerDisplay shows or hides the reference polymer
// overlay: a cartoon rendering of the nucleic residues, independent
// of the focus and distance slots. Idempotent in both directions.
func (v *Viewer) ToggleReferencePolymerDisplay(show bool) {
	if v.structure == nil {
		return
	}
	if show == (v.referencePolymer != 0) {
		return
	}
	if !show {
		v.stage.Remove(v.referencePolymer)
		v.referencePolymer = 0
		return
	}

	scheme := render.ColorByResidueIndex
	config := v.manager.Config(render.Cartoon, render.Patch{ColorScheme: &scheme})
	config.Polymer = render.PolymerNucleic
	v.referencePolymer = v.stage.AddRepresentation(RepresentationSpec{
		Config:    config,
		Selection: Selection{Polymer: render.PolymerNucleic},
	})
}

// ReferencePolymerShown reports whether the reference polymer overlay
// is active.
func (v *Viewer) ReferencePolymerShown() bool {
	return v.referencePolymer != 0
}

// ChangeRepresentation switches the primary representation's geometry
// type and rebuilds it. Switching to the surface geometry with a
// near-opaque opacity clamps the opacity down so the reference
// polymer stays visible underneath.
func (v *Viewer) ChangeRepresentation(geometry render.GeometryType) {
	if v.structure == nil {
		return
	}
	patch := render.Patch{Geometry: &geometry}
	if geometry == render.Surface && v.manager.Settings().Opacity > nearOpaqueThreshold {
		clamped := surfaceOpacityClamp
		patch.Opacity = &clamped
	}
	v.manager.Update(patch)
	v.rebuildPrimary()
}

// UpdateColorScheme switches the primary representation's color
// scheme and rebuilds it.
func (v *Viewer) UpdateColorScheme(scheme render.ColorScheme) {
	if v.structure == nil {
		return
	}
	v.manager.Update(render.Patch{ColorScheme: &scheme})
	v.rebuildPrimary()
}

// UpdateOpacity sets the primary representation's opacity fraction
// and rebuilds it.
func (v *Viewer) UpdateOpacity(fraction float64) {
	if v.structure == nil {
		return
	}
	v.manager.Update(render.Patch{Opacity: &fraction})
	v.rebuildPrimary()
}

// ToggleSidechains shows or hides sidechains on the primary
// representation and rebuilds it.
func (v *Viewer) ToggleSidechains(show bool) {
	if v.structure == nil {
		return
	}
	v.manager.Update(render.Patch{Sidechains: &show})
	v.rebuildPrimary()
}

// rebuildPrimary replaces the primary structural representation with
// a fresh one from the manager's current settings. Remove-then-add
// keeps ghost representations from accumulating.
func (v *Viewer) rebuildPrimary() {
	if v.primary != 0 {
		v.stage.Remove(v.primary)
		v.primary = 0
	}
	settings := v.manager.Settings()
	config := v.manager.Config(settings.Geometry, render.Patch{})
	v.primary = v.stage.AddRepresentation(RepresentationSpec{
		Config:    config,
		Selection: Selection{Polymer: render.PolymerProtein},
	})
}

// clearFocus empties the focus slot: highlight and label, in that
// order, nulling the handles immediately.
func (v *Viewer) clearFocus() {
	if v.focusHighlight != 0 {
		v.stage.Remove(v.focusHighlight)
		v.focusHighlight = 0
	}
	if v.focusLabel != 0 {
		v.stage.Remove(v.focusLabel)
		v.focusLabel = 0
	}
}

// FormatDistance renders a distance in Ångströms for labels and list
// rows, e.g. "12.3 Å".
func FormatDistance(d float64) string {
	return fmt.Sprintf("%.1f Å", d)
}
