// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package render

import "fmt"

// GeometryType selects how the primary structural representation is
// drawn. The zero value is Cartoon, the session default.
type GeometryType int

const (
	// Cartoon is a smoothed secondary-structure cartoon.
	Cartoon GeometryType = iota

	// Surface is a molecular surface.
	Surface

	// BallAndStick draws atoms as balls and bonds as sticks.
	BallAndStick

	// Licorice draws bonds as uniform sticks.
	Licorice

	// Ribbon is a flat backbone ribbon.
	Ribbon

	// Backbone is an alpha-carbon trace.
	Backbone
)

// String returns the flag- and config-friendly name of a geometry
// type.
func (g GeometryType) String() string {
	switch g {
	case Cartoon:
		return "cartoon"
	case Surface:
		return "surface"
	case BallAndStick:
		return "ball-and-stick"
	case Licorice:
		return "licorice"
	case Ribbon:
		return "ribbon"
	case Backbone:
		return "backbone"
	default:
		return fmt.Sprintf("unknown(%d)", int(g))
	}
}

// ParseGeometryType parses a geometry type from its string
// representation.
func ParseGeometryType(name string) (GeometryType, error) {
	switch name {
	case "cartoon":
		return Cartoon, nil
	case "surface":
		return Surface, nil
	case "ball-and-stick":
		return BallAndStick, nil
	case "licorice", "sticks":
		return Licorice, nil
	case "ribbon":
		return Ribbon, nil
	case "backbone":
		return Backbone, nil
	default:
		return 0, fmt.Errorf("unknown geometry type: %q", name)
	}
}

// geometryInfo is one static catalog entry.
type geometryInfo struct {
	description        string
	supportsOpacity    bool
	supportsSidechains bool
	baseOpacity        float64
}

// catalog is the static geometry catalog. Full-atom geometries
// (ball-and-stick, licorice) show sidechains inherently, so the
// toggle does not apply to them; opacity applies only to the solid
// continuous geometries where translucency reads visually.
var catalog = map[GeometryType]geometryInfo{
	Cartoon: {
		description:        "secondary-structure cartoon",
		supportsOpacity:    true,
		supportsSidechains: true,
		baseOpacity:        1.0,
	},
	Surface: {
		description:        "molecular surface",
		supportsOpacity:    true,
		supportsSidechains: false,
		baseOpacity:        0.7,
	},
	BallAndStick: {
		description:        "atoms and bonds",
		supportsOpacity:    false,
		supportsSidechains: false,
		baseOpacity:        1.0,
	},
	Licorice: {
		description:        "uniform bond sticks",
		supportsOpacity:    false,
		supportsSidechains: false,
		baseOpacity:        1.0,
	},
	Ribbon: {
		description:        "backbone ribbon",
		supportsOpacity:    true,
		supportsSidechains: true,
		baseOpacity:        1.0,
	},
	Backbone: {
		description:        "alpha-carbon trace",
		supportsOpacity:    false,
		supportsSidechains: true,
		baseOpacity:        1.0,
	},
}

// AllGeometryTypes returns every geometry type in catalog order,
// which is also the order the UI cycles through.
func AllGeometryTypes() []GeometryType {
	return []GeometryType{Cartoon, Surface, BallAndStick, Licorice, Ribbon, Backbone}
}

// Description returns the human-readable catalog description of a
// geometry type.
func Description(g GeometryType) string {
	return catalog[g].description
}

// BaseOpacity returns the catalog's default opacity for a geometry
// type. The surface default doubles as the clamp target when a
// near-opaque opacity setting would hide everything underneath.
func BaseOpacity(g GeometryType) float64 {
	info, known := catalog[g]
	if !known {
		return 1.0
	}
	return info.baseOpacity
}
