package robot

import "github.com/Faultbox/robomjcf/pkg/math"

// MassProperties are the dynamics of a link expressed in a given frame.
type MassProperties struct {
	Mass    float64
	COM     math.Vec3 // Center of mass
	Inertia math.Mat3 // Symmetric tensor about COM
}

// Dynamics produces the mass properties of a link expressed in the frame
// located by tWorldLink. Implementations are supplied upstream and treated
// as authoritative.
type Dynamics interface {
	MassProperties(tWorldLink math.Mat4) MassProperties
}

// StaticDynamics holds mass properties computed in world coordinates and
// re-expresses them in any link frame.
type StaticDynamics struct {
	Mass         float64
	WorldCOM     math.Vec3 // Center of mass in world coordinates
	WorldInertia math.Mat3 // Inertia about the COM, world axes
}

// MassProperties implements Dynamics.
func (d StaticDynamics) MassProperties(tWorldLink math.Mat4) MassProperties {
	rot := tWorldLink.Rotation()
	return MassProperties{
		Mass:    d.Mass,
		COM:     tWorldLink.Inverse().TransformPoint(d.WorldCOM),
		Inertia: rot.Transpose().Mul(d.WorldInertia).Mul(rot),
	}
}

// FixedDynamics returns the same mass properties for any frame. Useful when
// the upstream source already expresses them in the link frame.
type FixedDynamics MassProperties

// MassProperties implements Dynamics.
func (d FixedDynamics) MassProperties(math.Mat4) MassProperties {
	return MassProperties(d)
}
