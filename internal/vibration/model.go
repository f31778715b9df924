// Package vibration models the stylized single-sine vibration of a string:
// an amplitude that snaps to full on activation and decays linearly per
// rendered frame, and the displacement it induces on the string's vertices.
package vibration

import (
	"math"

	"github.com/olivier-w/strumspace/internal/responsive"
	"github.com/olivier-w/strumspace/internal/scene"
)

const (
	// DecayRate is subtracted from the amplitude once per rendered frame
	// while the string is not engaged. It is not scaled by frame time.
	DecayRate = 0.015

	// AngularVelocity multiplies elapsed seconds inside the sine term. It is
	// the same for every layout profile.
	AngularVelocity = 20.0

	// floor snaps float residue left by repeated subtraction to zero.
	floor = 1e-12
)

// State is the per-string vibration state mutated once per frame.
type State struct {
	Amplitude float64
}

// Step advances s by one frame.
func Step(s State, active bool) State {
	switch {
	case active:
		return State{Amplitude: 1}
	case s.Amplitude > 0:
		a := s.Amplitude - DecayRate
		if a < floor {
			a = 0
		}
		return State{Amplitude: clamp01(a)}
	default:
		return State{}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Model owns one string's State.
type Model struct {
	state State
}

// Tick advances the model by one rendered frame.
func (m *Model) Tick(active bool) {
	m.state = Step(m.state, active)
}

// Excite sets the amplitude to full. Called on an activation edge so the
// attack is visible before the next frame.
func (m *Model) Excite() {
	m.state.Amplitude = 1
}

// Amplitude returns the current amplitude in [0,1].
func (m *Model) Amplitude() float64 { return m.state.Amplitude }

// Uniforms are the per-frame inputs of the displacement function.
type Uniforms struct {
	Time      float64
	Amplitude float64
	Profile   responsive.Profile
}

// Offset returns the vertical displacement at world depth z.
func Offset(z float64, u Uniforms) float64 {
	if u.Amplitude == 0 {
		return 0
	}
	return math.Sin(z*u.Profile.WaveLength+u.Time*AngularVelocity) * u.Amplitude * u.Profile.IntensityScalar
}

// Displace shifts a world-space vertex along Y. It has no effect on any
// model state.
func Displace(world scene.Vec3, u Uniforms) scene.Vec3 {
	world.Y += Offset(world.Z, u)
	return world
}
