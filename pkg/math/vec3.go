// Package math provides the rigid-transform math used by the exporter.
// All values are float64: exported documents must reproduce poses exactly.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
