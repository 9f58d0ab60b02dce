package math

import "math"

// Mat4 is a 4x4 homogeneous transform in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewRigid builds a transform from a rotation block and a translation.
func NewRigid(rot Mat3, t Vec3) Mat4 {
	return Mat4{
		rot[0], rot[3], rot[6], 0,
		rot[1], rot[4], rot[7], 0,
		rot[2], rot[5], rot[8], 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromRPY returns the transform with translation xyz and rotation
// Rz(yaw) * Ry(pitch) * Rx(roll), the URDF/ROS convention.
func FromRPY(xyz, rpy Vec3) Mat4 {
	rot := RotateZ(rpy.Z).Mul(RotateY(rpy.Y)).Mul(RotateX(rpy.X))
	rot[12], rot[13], rot[14] = xyz.X, xyz.Y, xyz.Z
	return rot
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Compose returns the left-to-right product ms[0] * ms[1] * ... .
// Compose() is the identity.
func Compose(ms ...Mat4) Mat4 {
	result := Identity()
	for _, m := range ms {
		result = result.Mul(m)
	}
	return result
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float64 {
	return m[col*4+row]
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Rotation returns the upper-left 3x3 block.
func (m Mat4) Rotation() Mat3 {
	return Mat3{
		m[0], m[4], m[8],
		m[1], m[5], m[9],
		m[2], m[6], m[10],
	}
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// ApproxEqual reports whether every element of m and other differ by at
// most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// Inverse returns the inverse of a rigid transform: the transposed
// rotation block and the translation -Rᵀt. m must not scale or shear.
func (m Mat4) Inverse() Mat4 {
	rt := m.Rotation().Transpose()
	return NewRigid(rt, rt.MulVec3(m.Translation()).Scale(-1))
}

// Relative returns inverse(parent) * child: the pose of child expressed in
// the parent frame.
func Relative(parent, child Mat4) Mat4 {
	return parent.Inverse().Mul(child)
}
