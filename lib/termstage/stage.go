// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package termstage

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/varscope/varscope/lib/pdb"
	"github.com/varscope/varscope/lib/render"
	"github.com/varscope/varscope/lib/viewer"
)

// focusZoom is the zoom factor applied when the camera centers on a
// single residue.
const focusZoom = 3.0

type overlayKind int

const (
	kindRepresentation overlayKind = iota
	kindLabel
	kindDistance
)

// overlay is one visual addition keyed by its handle. Exactly one of
// the spec fields is meaningful, selected by kind.
type overlay struct {
	kind           overlayKind
	representation viewer.RepresentationSpec
	label          viewer.LabelSpec
	distance       viewer.DistanceSpec
}

// Stage is the terminal implementation of viewer.Stage. It keeps the
// overlay catalog and an orthographic camera, and rasterizes both
// into a braille frame on demand.
type Stage struct {
	model *pdb.Structure

	next     viewer.Handle
	overlays map[viewer.Handle]overlay
	order    []viewer.Handle

	// Camera state. center is the world-space point projected to the
	// middle of the pane; yaw and pitch are radians around the Y and
	// X axes; zoom scales around center.
	center pdb.Vec3
	yaw    float64
	pitch  float64
	zoom   float64

	// Model extent, computed once per SetModel.
	modelCenter pdb.Vec3
	modelRadius float64
}

// New returns an empty stage with a unit camera.
func New() *Stage {
	return &Stage{
		overlays: make(map[viewer.Handle]overlay),
		zoom:     1.0,
	}
}

// SetModel installs the structure and fits the projection extent to
// its bounding sphere.
func (s *Stage) SetModel(structure *pdb.Structure) {
	s.model = structure

	var sum pdb.Vec3
	count := 0
	structure.EachAtom(func(atom pdb.Atom) {
		sum = sum.Add(atom.Position)
		count++
	})
	if count == 0 {
		s.modelCenter = pdb.Vec3{}
		s.modelRadius = 1
		s.center = s.modelCenter
		return
	}
	s.modelCenter = sum.Scale(1 / float64(count))

	radius := 0.0
	structure.EachAtom(func(atom pdb.Atom) {
		if d := pdb.Distance(atom.Position, s.modelCenter); d > radius {
			radius = d
		}
	})
	if radius == 0 {
		radius = 1
	}
	s.modelRadius = radius
	s.center = s.modelCenter
}

// AddRepresentation registers a structural representation.
func (s *Stage) AddRepresentation(spec viewer.RepresentationSpec) viewer.Handle {
	return s.add(overlay{kind: kindRepresentation, representation: spec})
}

// AddLabel registers a text label.
func (s *Stage) AddLabel(spec viewer.LabelSpec) viewer.Handle {
	return s.add(overlay{kind: kindLabel, label: spec})
}

// AddDistance registers a measurement line.
func (s *Stage) AddDistance(spec viewer.DistanceSpec) viewer.Handle {
	return s.add(overlay{kind: kindDistance, distance: spec})
}

func (s *Stage) add(item overlay) viewer.Handle {
	s.next++
	s.overlays[s.next] = item
	s.order = append(s.order, s.next)
	return s.next
}

// Remove drops the overlay behind the handle. Unknown handles are
// ignored.
func (s *Stage) Remove(handle viewer.Handle) {
	if _, exists := s.overlays[handle]; !exists {
		return
	}
	delete(s.overlays, handle)
	for index, candidate := range s.order {
		if candidate == handle {
			s.order = append(s.order[:index], s.order[index+1:]...)
			break
		}
	}
}

// FocusOn centers the camera on the selection's centroid and zooms
// in. The transition duration is ignored: a terminal frame has no
// animation.
func (s *Stage) FocusOn(selection viewer.Selection, _ time.Duration) {
	atoms := s.selectionAtoms(selection)
	if len(atoms) == 0 {
		return
	}
	var sum pdb.Vec3
	for _, atom := range atoms {
		sum = sum.Add(atom.Position)
	}
	s.center = sum.Scale(1 / float64(len(atoms)))
	s.zoom = focusZoom
}

// ResetCamera recenters on the whole structure at unit zoom, keeping
// the current orientation.
func (s *Stage) ResetCamera(_ time.Duration) {
	s.center = s.modelCenter
	s.zoom = 1.0
}

// Rotate adjusts the camera orientation by the given yaw and pitch
// deltas in radians. Pitch is clamped short of the poles so the
// projection never flips.
func (s *Stage) Rotate(deltaYaw, deltaPitch float64) {
	s.yaw += deltaYaw
	s.pitch += deltaPitch
	limit := math.Pi/2 - 0.01
	if s.pitch > limit {
		s.pitch = limit
	}
	if s.pitch < -limit {
		s.pitch = -limit
	}
}

// ZoomBy multiplies the zoom factor, clamped to a usable range.
func (s *Stage) ZoomBy(factor float64) {
	s.zoom *= factor
	if s.zoom < 0.2 {
		s.zoom = 0.2
	}
	if s.zoom > 20 {
		s.zoom = 20
	}
}

// View renders the current frame into a width×height cell block.
// Deterministic: same model, overlays and camera always produce the
// same string.
func (s *Stage) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	frame := newGrid(width, height)
	if s.model == nil {
		return s.composite(frame)
	}

	// Paint representations first, then measurement lines, then
	// labels, so annotations stay legible over dense geometry.
	for _, handle := range s.order {
		if item := s.overlays[handle]; item.kind == kindRepresentation {
			s.paintRepresentation(frame, item.representation)
		}
	}
	for _, handle := range s.order {
		if item := s.overlays[handle]; item.kind == kindDistance {
			s.paintDistance(frame, item.distance)
		}
	}
	for _, handle := range s.order {
		if item := s.overlays[handle]; item.kind == kindLabel {
			s.paintLabel(frame, item.label)
		}
	}
	return s.composite(frame)
}

// project maps a world coordinate to microgrid coordinates: rotate
// around the camera center, then scale the bounding sphere into the
// pane.
func (s *Stage) project(frame *grid, p pdb.Vec3) (int, int) {
	v := p.Sub(s.center)

	// Yaw around Y, then pitch around X.
	sinYaw, cosYaw := math.Sincos(s.yaw)
	x := v.X*cosYaw + v.Z*sinYaw
	z := -v.X*sinYaw + v.Z*cosYaw
	sinPitch, cosPitch := math.Sincos(s.pitch)
	y := v.Y*cosPitch - z*sinPitch

	microWidth := float64(frame.width * 2)
	microHeight := float64(frame.height * 4)
	scale := s.zoom * math.Min(microWidth, microHeight) / (2 * s.modelRadius)

	mx := int(math.Round(microWidth/2 + x*scale))
	my := int(math.Round(microHeight/2 - y*scale))
	return mx, my
}

// selectionAtoms resolves a viewer selection against the model in
// file order.
func (s *Stage) selectionAtoms(selection viewer.Selection) []pdb.Atom {
	var atoms []pdb.Atom
	if s.model == nil {
		return atoms
	}

	wantResidue := make(map[int]bool, len(selection.Residues))
	for _, number := range selection.Residues {
		wantResidue[number] = true
	}

	for chainIndex := range s.model.Chains {
		chain := &s.model.Chains[chainIndex]
		if selection.Chain != "" && chain.ID != selection.Chain {
			continue
		}
		for residueIndex := range chain.Residues {
			residue := &chain.Residues[residueIndex]
			if !matchesPolymer(residue, selection.Polymer) {
				continue
			}
			if len(wantResidue) > 0 && !wantResidue[residue.Number] {
				continue
			}
			atoms = append(atoms, residue.Atoms...)
		}
	}
	return atoms
}

func matchesPolymer(residue *pdb.Residue, polymer render.PolymerClass) bool {
	switch polymer {
	case render.PolymerNucleic:
		return residue.IsNucleic()
	default:
		return residue.IsAminoAcid()
	}
}

// backboneAnchor returns the residue's trace atom: the alpha carbon
// for amino acids, the phosphate for nucleotides.
func backboneAnchor(residue *pdb.Residue) *pdb.Atom {
	if residue.IsNucleic() {
		if p := residue.Atom("P"); p != nil {
			return p
		}
		return residue.Atom("C4'")
	}
	return residue.Atom("CA")
}

func (s *Stage) paintRepresentation(frame *grid, spec viewer.RepresentationSpec) {
	for chainIndex := range s.model.Chains {
		chain := &s.model.Chains[chainIndex]
		if spec.Selection.Chain != "" && chain.ID != spec.Selection.Chain {
			continue
		}
		s.paintChain(frame, spec, chain, chainIndex)
	}
}

// paintChain rasters one chain's share of a representation. Residue
// selection and polymer class filtering happen here so trace
// geometries only connect consecutive selected residues.
func (s *Stage) paintChain(frame *grid, spec viewer.RepresentationSpec, chain *pdb.Chain, chainIndex int) {
	wantResidue := make(map[int]bool, len(spec.Selection.Residues))
	for _, number := range spec.Selection.Residues {
		wantResidue[number] = true
	}

	var selected []*pdb.Residue
	for residueIndex := range chain.Residues {
		residue := &chain.Residues[residueIndex]
		if !matchesPolymer(residue, spec.Selection.Polymer) {
			continue
		}
		if len(wantResidue) > 0 && !wantResidue[residue.Number] {
			continue
		}
		selected = append(selected, residue)
	}
	if len(selected) == 0 {
		return
	}

	config := spec.Config
	total := len(selected)
	color := func(atom pdb.Atom, residueIndex int) string {
		fraction := 0.0
		if total > 1 {
			fraction = float64(residueIndex) / float64(total-1)
		}
		return atomColor(config.ColorScheme, atom, chainIndex, fraction)
	}

	switch config.Geometry {
	case render.BallAndStick, render.Licorice:
		s.paintAtoms(frame, selected, color, config.Geometry == render.BallAndStick)
	case render.Surface:
		s.paintSurface(frame, selected, color, config.Opacity)
	default: // Cartoon, Ribbon, Backbone
		s.paintTrace(frame, selected, color, config.Sidechains)
	}
}

// paintAtoms draws full-atom geometry: a line between consecutive
// heavy atoms of each residue, plus blobs at the atoms for
// ball-and-stick.
func (s *Stage) paintAtoms(frame *grid, residues []*pdb.Residue, color func(pdb.Atom, int) string, blobs bool) {
	for residueIndex, residue := range residues {
		var previousX, previousY int
		havePrevious := false
		for _, atom := range residue.Atoms {
			if atom.IsHydrogen() {
				continue
			}
			mx, my := s.project(frame, atom.Position)
			if havePrevious {
				frame.drawLine(previousX, previousY, mx, my, color(atom, residueIndex), false)
			}
			if blobs {
				frame.drawBlob(mx, my, color(atom, residueIndex))
			} else {
				frame.setPixel(mx, my, color(atom, residueIndex))
			}
			previousX, previousY = mx, my
			havePrevious = true
		}
	}
}

// paintSurface approximates a molecular surface as a dot cloud.
// Opacity thins the cloud: each atom's blob is emitted when its
// serial hashes under the opacity fraction, which keeps the dithering
// stable across frames.
func (s *Stage) paintSurface(frame *grid, residues []*pdb.Residue, color func(pdb.Atom, int) string, opacity float64) {
	threshold := uint32(opacity * 100)
	for residueIndex, residue := range residues {
		for _, atom := range residue.Atoms {
			if atom.IsHydrogen() {
				continue
			}
			if uint32(atom.Serial)*2654435761%100 >= threshold {
				continue
			}
			mx, my := s.project(frame, atom.Position)
			frame.drawBlob(mx, my, color(atom, residueIndex))
		}
	}
}

// paintTrace draws a backbone polyline through the residue anchors,
// breaking the stroke across sequence gaps. With sidechains enabled,
// non-backbone heavy atoms appear as single dots hanging off the
// trace.
func (s *Stage) paintTrace(frame *grid, residues []*pdb.Residue, color func(pdb.Atom, int) string, sidechains bool) {
	var previousX, previousY, previousNumber int
	havePrevious := false

	for residueIndex, residue := range residues {
		anchor := backboneAnchor(residue)
		if anchor == nil {
			havePrevious = false
			continue
		}
		mx, my := s.project(frame, anchor.Position)
		if havePrevious && residue.Number == previousNumber+1 {
			frame.drawLine(previousX, previousY, mx, my, color(*anchor, residueIndex), false)
		} else {
			frame.setPixel(mx, my, color(*anchor, residueIndex))
		}
		previousX, previousY, previousNumber = mx, my, residue.Number
		havePrevious = true

		// Nucleic cartoons sketch the base ring as a blob off the
		// backbone so base pairing reads in the frame.
		if residue.IsNucleic() {
			if base := residue.Atom("N1"); base != nil {
				bx, by := s.project(frame, base.Position)
				frame.drawLine(mx, my, bx, by, color(*base, residueIndex), false)
				frame.drawBlob(bx, by, color(*base, residueIndex))
			}
		}

		if !sidechains {
			continue
		}
		for _, atom := range residue.Atoms {
			if atom.IsHydrogen() || atom.Name == "CA" || atom.Name == "N" || atom.Name == "C" || atom.Name == "O" {
				continue
			}
			sx, sy := s.project(frame, atom.Position)
			frame.setPixel(sx, sy, color(atom, residueIndex))
		}
	}
}

func (s *Stage) paintDistance(frame *grid, spec viewer.DistanceSpec) {
	x0, y0 := s.project(frame, spec.From)
	x1, y1 := s.project(frame, spec.To)
	frame.drawLine(x0, y0, x1, y1, spec.Color, spec.Dashed)

	midpoint := spec.From.Add(spec.To).Scale(0.5)
	mx, my := s.project(frame, midpoint)
	frame.drawText(mx/2+1, my/4, spec.Label, spec.Color)
}

func (s *Stage) paintLabel(frame *grid, spec viewer.LabelSpec) {
	mx, my := s.project(frame, spec.Position)
	frame.drawText(mx/2+1, my/4, spec.Text, spec.Color)
}

// composite styles the grid into terminal lines. Runs of same-color
// cells are batched into one lipgloss render call per run.
func (s *Stage) composite(frame *grid) string {
	lines := make([]string, frame.height)
	var builder strings.Builder

	for row := 0; row < frame.height; row++ {
		builder.Reset()
		runColor := ""
		var run []rune

		flush := func() {
			if len(run) == 0 {
				return
			}
			text := string(run)
			if runColor == "" {
				builder.WriteString(text)
			} else {
				builder.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(text))
			}
			run = run[:0]
		}

		for column := 0; column < frame.width; column++ {
			r := frame.texts[row][column]
			if r == 0 {
				if mask := frame.masks[row][column]; mask != 0 {
					r = rune(0x2800 + int(mask))
				} else {
					r = ' '
				}
			}
			color := frame.colors[row][column]
			if r == ' ' {
				color = ""
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run = append(run, r)
		}
		flush()
		lines[row] = builder.String()
	}
	return strings.Join(lines, "\n")
}
