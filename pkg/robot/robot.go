// Package robot defines the kinematic-tree model consumed by the exporters.
//
// A Robot is built once by an upstream collaborator (CAD import, a model
// file loader) and is read-only while it is being exported.
package robot

import (
	"fmt"

	"github.com/Faultbox/robomjcf/pkg/math"
)

// JointType is the kind of motion a joint allows.
type JointType int

const (
	JointRevolute  JointType = iota // Rotation about the joint Z axis
	JointPrismatic                  // Translation along the joint Z axis
	JointFixed                      // No relative motion
)

// String returns a human-readable joint type name.
func (t JointType) String() string {
	switch t {
	case JointRevolute:
		return "revolute"
	case JointPrismatic:
		return "prismatic"
	case JointFixed:
		return "fixed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// ParseJointType maps a lowercase name to a JointType.
func ParseJointType(s string) (JointType, error) {
	switch s {
	case "revolute":
		return JointRevolute, nil
	case "prismatic":
		return JointPrismatic, nil
	case "fixed":
		return JointFixed, nil
	default:
		return 0, fmt.Errorf("unknown joint type %q", s)
	}
}

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Frame is a named auxiliary transform attached to a link (a marker site).
type Frame struct {
	Name  string
	World math.Mat4 // T_world_frame
}

// Part is a piece of geometry attached to a link, either a mesh, a list of
// primitive shapes, or both.
type Part struct {
	Name     string
	MeshFile string  // Path to an external mesh, empty if none
	Shapes   []Shape // Explicit primitives, used for collisions
	Color    Color
	World    math.Mat4 // T_world_part
}

// HasShapes reports whether the part declares explicit primitive shapes.
func (p *Part) HasShapes() bool {
	return len(p.Shapes) > 0
}

// Link is a rigid body of the robot.
type Link struct {
	Name     string
	Parts    []*Part
	Frames   []Frame
	Dynamics Dynamics
}

// Limits is a joint motion range (radians or meters).
type Limits struct {
	Lower, Upper float64
}

// Joint connects a parent link to a child link.
type Joint struct {
	Name       string
	Type       JointType
	Parent     *Link
	Child      *Link
	World      math.Mat4      // T_world_joint, also the child link frame
	Properties map[string]any // Free-form joint metadata, see ParseJointProperties
	Limits     *Limits        // nil when the joint is unbounded
}

// Robot is a tree of links connected by joints, rooted at Base.
type Robot struct {
	Name   string
	Links  []*Link
	Joints []*Joint
	Base   *Link
}

// BaseLink returns the root of the tree.
func (r *Robot) BaseLink() *Link {
	return r.Base
}

// ChildJoints returns the joints whose parent is link, in declaration order.
func (r *Robot) ChildJoints(link *Link) []*Joint {
	var joints []*Joint
	for _, j := range r.Joints {
		if j.Parent == link {
			joints = append(joints, j)
		}
	}
	return joints
}
