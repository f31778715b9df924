package vibration

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivier-w/strumspace/internal/responsive"
	"github.com/olivier-w/strumspace/internal/scene"
)

func TestStepActiveSnapsToFull(t *testing.T) {
	for _, a := range []float64{0, 0.2, 1} {
		if got := Step(State{Amplitude: a}, true); got.Amplitude != 1 {
			t.Fatalf("Step(%v, active) = %v, want 1", a, got.Amplitude)
		}
	}
}

func TestStepDecayFollowsLinearLaw(t *testing.T) {
	for _, a0 := range []float64{1, 0.5, 0.03, 0.0149, 0.77} {
		s := State{Amplitude: a0}
		frames := int(math.Ceil(a0 / DecayRate))
		for n := 1; n <= frames+10; n++ {
			s = Step(s, false)
			want := math.Max(a0-DecayRate*float64(n), 0)
			if math.Abs(s.Amplitude-want) > 1e-9 {
				t.Fatalf("a0=%v frame %d: amplitude = %v, want %v", a0, n, s.Amplitude, want)
			}
			if n >= frames && s.Amplitude != 0 {
				t.Fatalf("a0=%v: amplitude = %v after %d frames, want exactly 0", a0, s.Amplitude, n)
			}
		}
	}
}

func TestStepZeroStaysZero(t *testing.T) {
	s := State{}
	for range 5 {
		s = Step(s, false)
		if s.Amplitude != 0 {
			t.Fatalf("expected idle zero amplitude, got %v", s.Amplitude)
		}
	}
}

func TestModelAmplitudeStaysInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var m Model
	for range 5000 {
		switch rng.Intn(4) {
		case 0:
			m.Excite()
		case 1:
			m.Tick(true)
		default:
			m.Tick(false)
		}
		if a := m.Amplitude(); a < 0 || a > 1 {
			t.Fatalf("amplitude escaped [0,1]: %v", a)
		}
	}
}

func TestOffsetScenario(t *testing.T) {
	u := Uniforms{
		Time:      0,
		Amplitude: 1,
		Profile:   responsive.ProfileFor(responsive.Wide),
	}

	if got := Displace(scene.Vec3{}, u); got.Y != 0 {
		t.Fatalf("displaced Y at z=0 = %v, want 0", got.Y)
	}
	got := Displace(scene.Vec3{Z: math.Pi / 8}, u)
	if math.Abs(got.Y-0.5) > 1e-12 {
		t.Fatalf("displaced Y at z=pi/8 = %v, want 0.5", got.Y)
	}
	if got.Z != math.Pi/8 || got.X != 0 {
		t.Fatalf("Displace moved X or Z: %+v", got)
	}
}

func TestOffsetFrequencyIndependentOfProfile(t *testing.T) {
	// A quarter period of the time term is pi/40 seconds for both profiles.
	for _, c := range []responsive.Class{responsive.Wide, responsive.Narrow} {
		p := responsive.ProfileFor(c)
		u := Uniforms{Time: math.Pi / 40, Amplitude: 1, Profile: p}
		if got := Offset(0, u); math.Abs(got-p.IntensityScalar) > 1e-12 {
			t.Fatalf("%v: Offset = %v, want %v", c, got, p.IntensityScalar)
		}
	}
}

func TestOffsetSilentAtRest(t *testing.T) {
	u := Uniforms{Time: 3.3, Profile: responsive.ProfileFor(responsive.Narrow)}
	if got := Offset(12, u); got != 0 {
		t.Fatalf("Offset with zero amplitude = %v", got)
	}
}
