package responsive

// Class is the binary layout classification of the viewport.
type Class int

const (
	Narrow Class = iota
	Wide
)

// Threshold is the minimum viewport width, in pixel units, classified Wide.
const Threshold = 900

func (c Class) String() string {
	if c == Wide {
		return "wide"
	}
	return "narrow"
}

// Profile holds the animation constants shared by every string.
type Profile struct {
	WaveLength      float64
	IntensityScalar float64
}

var (
	wideProfile   = Profile{WaveLength: 4.0, IntensityScalar: 0.5}
	narrowProfile = Profile{WaveLength: 6.0, IntensityScalar: 2.4}
)

// Classify maps a viewport width to its layout class.
func Classify(width float64) Class {
	if width >= Threshold {
		return Wide
	}
	return Narrow
}

// ProfileFor returns the constants for a layout class.
func ProfileFor(c Class) Profile {
	if c == Wide {
		return wideProfile
	}
	return narrowProfile
}

// Tracker re-evaluates the classification on every observation and reports
// when it flips.
type Tracker struct {
	class  Class
	seeded bool
}

// Observe classifies width and returns the active profile. changed is true
// on the first observation and whenever the class differs from the previous one.
func (t *Tracker) Observe(width float64) (Profile, bool) {
	c := Classify(width)
	changed := !t.seeded || c != t.class
	t.class = c
	t.seeded = true
	return ProfileFor(c), changed
}

// Class returns the class seen by the last Observe call.
func (t *Tracker) Class() Class { return t.class }
