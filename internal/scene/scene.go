package scene

import "math"

// Color is a named or #RRGGBB color string as the scene host understands it.
type Color string

// Material describes the toon shading of the guitar body.
type Material struct {
	Color       Color
	Transparent bool
	DoubleSided bool
}

// Outline is the inverted-hull silhouette drawn around a mesh.
type Outline struct {
	Thickness float64
	Color     Color
}

// Edges draws creases whose angle exceeds Threshold degrees.
type Edges struct {
	Scale     float64
	Threshold float64
	Color     Color
}

// Model is the static decorated mesh the strings are mounted on.
type Model struct {
	Name     string
	Position Vec3
	Material Material
	Outline  Outline
	Edges    Edges
	Shadows  bool
}

// LightKind identifies a light type.
type LightKind int

const (
	SpotLight LightKind = iota
	DirectionalLight
	HemisphereLight
)

func (k LightKind) String() string {
	switch k {
	case SpotLight:
		return "spot"
	case DirectionalLight:
		return "directional"
	case HemisphereLight:
		return "hemisphere"
	default:
		return "unknown"
	}
}

// Shadow holds the shadow camera parameters of a light.
type Shadow struct {
	MapSize int
	FOV     float64
	Near    float64
	Far     float64
	Extent  float64 // half-size of an orthographic shadow frustum
}

// Light is one entry of the lighting rig.
type Light struct {
	Name      string
	Kind      LightKind
	Position  Vec3
	Intensity float64
	Angle     float64
	Distance  float64
	Shadow    *Shadow
}

// Description is the fixed scene around the strings.
type Description struct {
	Background Color
	Body       Model
	Lights     []Light
}

// Guitar returns the static scene: the decorated body and its lighting rig.
func Guitar() Description {
	return Description{
		Background: "#FFCC70",
		Body: Model{
			Name:     "Guitar",
			Position: Vec3{X: -3.53, Y: 0, Z: 36.22},
			Material: Material{Color: "orange", Transparent: true, DoubleSided: true},
			Outline:  Outline{Thickness: 0.8, Color: "black"},
			Edges:    Edges{Scale: 1, Threshold: 15, Color: "black"},
			Shadows:  true,
		},
		Lights: []Light{
			{
				Name:      "Spot Light",
				Kind:      SpotLight,
				Position:  Vec3{X: 107, Y: 446.51, Z: -43},
				Intensity: 1,
				Angle:     math.Pi / 6,
				Distance:  2000,
				Shadow:    &Shadow{MapSize: 1024, FOV: 120, Near: 100, Far: 100000},
			},
			{
				Name:      "Directional Light",
				Kind:      DirectionalLight,
				Position:  Vec3{X: 200, Y: 300, Z: 300},
				Intensity: 0.7,
				Shadow:    &Shadow{MapSize: 1024, Near: -10000, Far: 100000, Extent: 1000},
			},
			{
				Name:      "Default Ambient Light",
				Kind:      HemisphereLight,
				Intensity: 0.75,
			},
		},
	}
}

// Camera is the viewpoint and instrument group orientation for one layout.
type Camera struct {
	Position      Vec3
	GroupRotation Euler
}

// WideCamera and NarrowCamera are the two layout viewpoints.
var (
	WideCamera = Camera{
		Position: Vec3{X: -200, Y: 80, Z: -90},
	}
	NarrowCamera = Camera{
		Position:      Vec3{X: -200, Y: 80, Z: -180},
		GroupRotation: Euler{X: -0.9, Y: 0.2, Z: -0.4},
	}
)

// StringRotation is the slight yaw every string is mounted with.
var StringRotation = Euler{Y: 0.03}

// Ambient returns the summed intensity of the non-directional lights. The
// terminal renderer uses it to shade the body.
func (d Description) Ambient() float64 {
	var sum float64
	for _, l := range d.Lights {
		if l.Kind == HemisphereLight {
			sum += l.Intensity
		}
	}
	return sum
}
