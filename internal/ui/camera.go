package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// cameraPan glides the stage offset toward a target with a critically
// damped spring, one step per frame.
type cameraPan struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
	tx, ty float64
}

func newCameraPan(fps int) *cameraPan {
	return &cameraPan{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

func (c *cameraPan) nudge(dx, dy float64) {
	c.tx += dx
	c.ty += dy
}

func (c *cameraPan) recenter() {
	c.tx, c.ty = 0, 0
}

func (c *cameraPan) step() {
	c.x, c.vx = c.spring.Update(c.x, c.vx, c.tx)
	c.y, c.vy = c.spring.Update(c.y, c.vy, c.ty)
}

// offset returns the current pan in whole cells.
func (c *cameraPan) offset() (int, int) {
	return int(math.Round(c.x)), int(math.Round(c.y))
}

// settled reports whether the pan has reached its target.
func (c *cameraPan) settled() bool {
	return math.Abs(c.x-c.tx) < 0.01 && math.Abs(c.y-c.ty) < 0.01 &&
		math.Abs(c.vx) < 0.01 && math.Abs(c.vy) < 0.01
}
