// Package bs8110 holds the design-code side of the drafting tool: the
// material and load settings sent with every save, clause references used
// to annotate calculation logs, and the slab panel support cases.
package bs8110

import (
	"errors"
	"fmt"
)

// Settings are the global material and load parameters.
type Settings struct {
	SlabThickness float64 `json:"slabThickness"` // m
	FinishLoad    float64 `json:"finishLoad"`    // kPa
	LiveLoad      float64 `json:"liveLoad"`      // kPa
	Density       float64 `json:"density"`       // kN/m³
	BeamWidth     float64 `json:"beamWidth"`     // m
	BeamDepth     float64 `json:"beamDepth"`     // m
	Fcu           float64 `json:"fcu"`           // N/mm²
	Fy            float64 `json:"fy"`            // N/mm²
	Fyv           float64 `json:"fyv"`           // N/mm²
	Cover         float64 `json:"cover"`         // mm
}

// Defaults returns the settings used when the server has none.
func Defaults() Settings {
	return Settings{
		SlabThickness: 0.15,
		FinishLoad:    1.5,
		LiveLoad:      1.5,
		Density:       24,
		BeamWidth:     0.23,
		BeamDepth:     0.45,
		Fcu:           25,
		Fy:            460,
		Fyv:           250,
		Cover:         25,
	}
}

// WithDefaults fills every unset (zero) parameter from Defaults.
func (s Settings) WithDefaults() Settings {
	d := Defaults()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&s.SlabThickness, d.SlabThickness)
	fill(&s.FinishLoad, d.FinishLoad)
	fill(&s.LiveLoad, d.LiveLoad)
	fill(&s.Density, d.Density)
	fill(&s.BeamWidth, d.BeamWidth)
	fill(&s.BeamDepth, d.BeamDepth)
	fill(&s.Fcu, d.Fcu)
	fill(&s.Fy, d.Fy)
	fill(&s.Fyv, d.Fyv)
	fill(&s.Cover, d.Cover)
	return s
}

// Validate rejects negative or non-physical parameters.
func (s Settings) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative (got %g)", name, v))
		}
	}
	check("slabThickness", s.SlabThickness)
	check("finishLoad", s.FinishLoad)
	check("liveLoad", s.LiveLoad)
	check("density", s.Density)
	check("beamWidth", s.BeamWidth)
	check("beamDepth", s.BeamDepth)
	check("fcu", s.Fcu)
	check("fy", s.Fy)
	check("fyv", s.Fyv)
	check("cover", s.Cover)
	if s.BeamWidth > 0 && s.BeamDepth > 0 && s.BeamDepth < s.BeamWidth/4 {
		errs = append(errs, fmt.Errorf("beamDepth %g m is implausibly shallow for width %g m", s.BeamDepth, s.BeamWidth))
	}
	return errors.Join(errs...)
}

// SlabSelfWeight returns h·γ in kPa.
func (s Settings) SlabSelfWeight() float64 {
	return s.SlabThickness * s.Density
}

// SlabDeadLoad returns Gk = h·γ + finishes in kPa.
func (s Settings) SlabDeadLoad() float64 {
	return s.SlabSelfWeight() + s.FinishLoad
}

// SlabUltimateLoad returns n = 1.4Gk + 1.6Qk for the slab in kPa.
func (s Settings) SlabUltimateLoad() float64 {
	return UltimateLoad(s.SlabDeadLoad(), s.LiveLoad)
}
