package robot

import "github.com/Faultbox/robomjcf/pkg/math"

// Shape is a primitive collision/visual solid. The set of shapes is closed:
// Box, Cylinder and Sphere. Consumers dispatch with a ShapeVisitor.
type Shape interface {
	// Frame returns T_part_shape, the shape pose relative to its part.
	Frame() math.Mat4
	// Accept calls the visitor method matching the concrete shape.
	Accept(v ShapeVisitor)

	sealed()
}

// ShapeVisitor receives one call per visited shape.
type ShapeVisitor interface {
	VisitBox(b Box)
	VisitCylinder(c Cylinder)
	VisitSphere(s Sphere)
}

// Box is an axis-aligned box centered on its frame. Size holds full extents.
type Box struct {
	Size  math.Vec3
	Local math.Mat4
}

// Cylinder is centered on its frame with its axis along Z.
// Length is the full height.
type Cylinder struct {
	Radius float64
	Length float64
	Local  math.Mat4
}

// Sphere is centered on its frame.
type Sphere struct {
	Radius float64
	Local  math.Mat4
}

func (b Box) Frame() math.Mat4      { return b.Local }
func (c Cylinder) Frame() math.Mat4 { return c.Local }
func (s Sphere) Frame() math.Mat4   { return s.Local }

func (b Box) Accept(v ShapeVisitor)      { v.VisitBox(b) }
func (c Cylinder) Accept(v ShapeVisitor) { v.VisitCylinder(c) }
func (s Sphere) Accept(v ShapeVisitor)   { v.VisitSphere(s) }

func (Box) sealed()      {}
func (Cylinder) sealed() {}
func (Sphere) sealed()   {}
