package instrument

import (
	"path/filepath"

	"github.com/olivier-w/strumspace/internal/scene"
)

// StringSpec is the immutable description of one string.
type StringSpec struct {
	ID       int
	Position scene.Vec3
	Length   float64
	Asset    string
}

// DefaultStrings returns the six strings of the guitar, high e first, with
// assets resolved against dir.
func DefaultStrings(dir string) []StringSpec {
	specs := []StringSpec{
		{Position: scene.Vec3{X: -22, Y: -5, Z: 25}, Length: 298, Asset: "1st_e.mp3"},
		{Position: scene.Vec3{X: -22, Y: -3, Z: 30}, Length: 308, Asset: "2nd_B.mp3"},
		{Position: scene.Vec3{X: -22, Y: -1, Z: 35}, Length: 310, Asset: "3rd_G.mp3"},
		{Position: scene.Vec3{X: -22, Y: 1, Z: 35}, Length: 310, Asset: "4th_D.mp3"},
		{Position: scene.Vec3{X: -22, Y: 3, Z: 30}, Length: 308, Asset: "5th_A.mp3"},
		{Position: scene.Vec3{X: -22, Y: 5, Z: 25}, Length: 298, Asset: "6th_E.mp3"},
	}
	for i := range specs {
		specs[i].ID = i + 1
		specs[i].Asset = filepath.Join(dir, specs[i].Asset)
	}
	return specs
}
