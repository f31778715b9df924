// Package instrument composes the six strings of the guitar with the static
// scene. The rig owns no animation logic of its own; it fans the frame
// callback and interaction events out to its strings.
package instrument

import (
	"context"
	"log/slog"

	"github.com/olivier-w/strumspace/internal/audio"
	"github.com/olivier-w/strumspace/internal/gate"
	"github.com/olivier-w/strumspace/internal/responsive"
	"github.com/olivier-w/strumspace/internal/scene"
)

// CueFactory builds the cue for a string.
type CueFactory func(spec StringSpec) Cue

// Rig is the instrument's composition root.
type Rig struct {
	strings []*String
	scene   scene.Description
	unlock  *audio.Unlock
	logger  *slog.Logger

	tracker responsive.Tracker
	profile responsive.Profile
	camera  scene.Camera

	started        bool
	cameraControls bool
	elapsed        float64
	frames         uint64
}

// Option configures a Rig.
type Option func(*rigOptions)

type rigOptions struct {
	logger *slog.Logger
	unlock *audio.Unlock
	label  func(path string) string
}

// WithLogger sets the rig's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *rigOptions) { o.logger = l }
}

// WithUnlock shares the audio unlock gate the rig opens on Start.
func WithUnlock(u *audio.Unlock) Option {
	return func(o *rigOptions) { o.unlock = u }
}

// WithLabeler overrides how string labels are read from assets.
func WithLabeler(fn func(path string) string) Option {
	return func(o *rigOptions) { o.label = fn }
}

// New lays out one String per spec.
func New(specs []StringSpec, newCue CueFactory, opts ...Option) *Rig {
	o := rigOptions{
		logger: slog.New(slog.DiscardHandler),
		label:  audio.ReadLabel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.unlock == nil {
		o.unlock = new(audio.Unlock)
	}

	r := &Rig{
		scene:  scene.Guitar(),
		unlock: o.unlock,
		logger: o.logger,
		camera: scene.NarrowCamera,
	}
	r.profile = responsive.ProfileFor(responsive.Narrow)
	for _, spec := range specs {
		r.strings = append(r.strings, newString(spec, o.label(spec.Asset), newCue(spec)))
	}
	r.place()
	return r
}

// Mount starts preloading every string's cue.
func (r *Rig) Mount(ctx context.Context) {
	for _, s := range r.strings {
		s.cue.Preload(ctx)
	}
}

// Frame is the per-frame callback. The profile is computed once and applied
// to every string, so no string can observe a mixed profile.
func (r *Rig) Frame(elapsed, viewportWidth float64) {
	profile, changed := r.tracker.Observe(viewportWidth)
	if changed {
		r.profile = profile
		if r.tracker.Class() == responsive.Wide {
			r.camera = scene.WideCamera
		} else {
			r.camera = scene.NarrowCamera
		}
		r.place()
		r.logger.Debug("layout profile", "class", r.tracker.Class(), "width", viewportWidth,
			"wave_length", profile.WaveLength, "intensity", profile.IntensityScalar)
	}

	r.elapsed = elapsed
	r.frames++
	for _, s := range r.strings {
		s.tick(elapsed, r.profile)
	}
}

func (r *Rig) place() {
	for _, s := range r.strings {
		s.place(r.camera.GroupRotation)
	}
}

// Dispatch routes an interaction event to string i. Events are dropped until
// Start, and touch-start is withheld while camera controls are enabled. It
// reports whether the event produced an activation edge.
func (r *Rig) Dispatch(i int, ev gate.Event) bool {
	if !r.started || i < 0 || i >= len(r.strings) {
		return false
	}
	if r.cameraControls && ev == gate.TouchStart {
		return false
	}
	s := r.strings[i]
	edge := s.gate.Handle(ev)
	if edge {
		r.logger.Debug("string plucked", "string", s.spec.ID, "event", ev, "cue_ready", s.cue.Ready())
	}
	return edge
}

// Start dismisses the start overlay and opens the audio unlock gate.
func (r *Rig) Start() {
	if r.started {
		return
	}
	r.started = true
	r.unlock.Open()
	r.logger.Info("instrument started")
}

func (r *Rig) Started() bool { return r.started }

// ToggleCameraControls flips camera repositioning and returns the new state.
func (r *Rig) ToggleCameraControls() bool {
	r.cameraControls = !r.cameraControls
	return r.cameraControls
}

func (r *Rig) CameraControls() bool { return r.cameraControls }

// Camera returns the viewpoint for the current layout class.
func (r *Rig) Camera() scene.Camera { return r.camera }

// Profile returns the profile applied by the last frame.
func (r *Rig) Profile() responsive.Profile { return r.profile }

// Class returns the layout class seen by the last frame.
func (r *Rig) Class() responsive.Class { return r.tracker.Class() }

// Scene returns the static scene description.
func (r *Rig) Scene() scene.Description { return r.scene }

func (r *Rig) Strings() []*String { return r.strings }

// Elapsed returns the clock value of the last frame.
func (r *Rig) Elapsed() float64 { return r.elapsed }

// Frames counts frame callbacks since mount.
func (r *Rig) Frames() uint64 { return r.frames }

// Preload reports how many cues are ready and how many failed.
func (r *Rig) Preload() (ready, failed, total int) {
	for _, s := range r.strings {
		switch {
		case s.cue.Ready():
			ready++
		case s.cue.Err() != nil:
			failed++
		}
	}
	return ready, failed, len(r.strings)
}

// Close releases every cue and returns all strings to idle.
func (r *Rig) Close() {
	for _, s := range r.strings {
		s.gate.Reset()
		s.cue.Close()
	}
}
