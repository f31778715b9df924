package scene

import "math"

// Vec3 is a float64 3D vector in scene units.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Euler is a rotation in radians applied in XYZ order.
type Euler struct {
	X, Y, Z float64
}

// Rotate applies e to v. The matrix matches an intrinsic XYZ rotation:
// R = Rx * Ry * Rz.
func (e Euler) Rotate(v Vec3) Vec3 {
	return e.matrix().apply(v)
}

type mat3 [3][3]float64

func (e Euler) matrix() mat3 {
	a, b := math.Cos(e.X), math.Sin(e.X)
	c, d := math.Cos(e.Y), math.Sin(e.Y)
	f, g := math.Cos(e.Z), math.Sin(e.Z)

	ae, af := a*f, a*g
	be, bf := b*f, b*g

	return mat3{
		{c * f, -c * g, d},
		{af + be*d, ae - bf*d, -b * c},
		{bf - ae*d, be + af*d, a * c},
	}
}

func (m mat3) mul(o mat3) mat3 {
	var r mat3
	for i := range 3 {
		for j := range 3 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m mat3) apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
