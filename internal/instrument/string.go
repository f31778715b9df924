package instrument

import (
	"context"

	"github.com/olivier-w/strumspace/internal/gate"
	"github.com/olivier-w/strumspace/internal/responsive"
	"github.com/olivier-w/strumspace/internal/scene"
	"github.com/olivier-w/strumspace/internal/vibration"
)

// Cue is the audio side of a string.
type Cue interface {
	Preload(ctx context.Context)
	Trigger() bool
	Ready() bool
	Err() error
	Close()
}

// String composes the vibration model, interaction gate and cue of one
// string. It is driven from the frame loop only.
type String struct {
	spec  StringSpec
	label string

	model    vibration.Model
	gate     *gate.Gate
	cue      Cue
	uniforms vibration.Uniforms
	world    scene.World

	plucks int
}

func newString(spec StringSpec, label string, cue Cue) *String {
	s := &String{spec: spec, label: label, cue: cue}
	s.gate = gate.New(s.pluck)
	s.place(scene.Euler{})
	return s
}

// pluck runs on the activation edge.
func (s *String) pluck() {
	s.model.Excite()
	s.uniforms.Amplitude = s.model.Amplitude()
	s.plucks++
	s.cue.Trigger()
}

// place resolves the string's world mapping under a group rotation.
func (s *String) place(group scene.Euler) {
	s.world = scene.Compose(
		scene.Transform{Rotation: group},
		scene.Transform{Position: s.spec.Position, Rotation: scene.StringRotation},
	)
}

func (s *String) tick(elapsed float64, profile responsive.Profile) {
	s.model.Tick(s.gate.Active())
	s.uniforms = vibration.Uniforms{
		Time:      elapsed,
		Amplitude: s.model.Amplitude(),
		Profile:   profile,
	}
}

func (s *String) Spec() StringSpec { return s.spec }

func (s *String) Label() string { return s.label }

func (s *String) Active() bool { return s.gate.Active() }

func (s *String) Amplitude() float64 { return s.model.Amplitude() }

// Uniforms returns the displacement inputs computed by the last frame.
func (s *String) Uniforms() vibration.Uniforms { return s.uniforms }

// Plucks counts activation edges since mount.
func (s *String) Plucks() int { return s.plucks }

// World returns the string's local-to-world mapping under the current group
// rotation.
func (s *String) World() scene.World { return s.world }

// Cue returns the string's audio cue.
func (s *String) Cue() Cue { return s.cue }

// Sample returns n displaced world-space vertices spread evenly along the
// string's length, from its near end to its far end.
func (s *String) Sample(n int) []scene.Vec3 {
	return s.vertices(n, true)
}

// Rest returns the same vertices as Sample without displacement.
func (s *String) Rest(n int) []scene.Vec3 {
	return s.vertices(n, false)
}

func (s *String) vertices(n int, displaced bool) []scene.Vec3 {
	if n <= 0 {
		return nil
	}
	out := make([]scene.Vec3, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		v := s.world.Apply(scene.Vec3{Z: (t - 0.5) * s.spec.Length})
		if displaced {
			v = vibration.Displace(v, s.uniforms)
		}
		out[i] = v
	}
	return out
}
