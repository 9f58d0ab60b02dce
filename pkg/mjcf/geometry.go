package mjcf

import (
	"path/filepath"
	"strings"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// Role selects visual or collision geometry. It is used both as the geom
// default class and as the policy deciding which content a part provides.
type Role string

const (
	RoleVisual    Role = "visual"
	RoleCollision Role = "collision"
)

// geometryEmitter writes the geoms of a part. Mesh and material references
// are recorded in assets.
type geometryEmitter struct {
	w          *xmlWriter
	assets     *AssetRegistry
	shapesOnly bool
}

// emit writes the geoms of part for one role. class is the default class
// given to the geoms and policy picks their content; they differ when
// collision geometry is drawn in place of visual geometry.
func (g *geometryEmitter) emit(part *robot.Part, tWorldBody math.Mat4, class, policy Role) {
	if policy == RoleCollision && part.HasShapes() {
		g.emitShapes(part, tWorldBody, class)
		return
	}
	if part.MeshFile != "" && (policy == RoleVisual || !g.shapesOnly) {
		g.emitMesh(part, tWorldBody, class)
	}
}

// meshName returns the mesh file base name and the same name without its
// extension, which is how MuJoCo names mesh assets.
func meshName(file string) (base, name string) {
	base = filepath.Base(file)
	return base, strings.TrimSuffix(base, filepath.Ext(base))
}

func (g *geometryEmitter) emitMesh(part *robot.Part, tWorldBody math.Mat4, class Role) {
	file, name := meshName(part.MeshFile)
	material := name + "_material"

	tBodyPart := math.Relative(tWorldBody, part.World)

	attrs := []attr{{"type", "mesh"}, {"class", string(class)}}
	attrs = append(attrs, poseAttrs(tBodyPart)...)
	attrs = append(attrs, attr{"mesh", name}, attr{"material", material})

	g.w.comment("Mesh " + part.Name)
	g.w.leaf("geom", attrs...)

	g.assets.RegisterMesh(file)
	g.assets.RegisterMaterial(material, part.Color)
}

func (g *geometryEmitter) emitShapes(part *robot.Part, tWorldBody math.Mat4, class Role) {
	bodyInv := tWorldBody.Inverse()
	for _, shape := range part.Shapes {
		tBodyShape := math.Compose(bodyInv, part.World, shape.Frame())

		var sg shapeGeom
		shape.Accept(&sg)

		attrs := []attr{{"class", string(class)}}
		attrs = append(attrs, poseAttrs(tBodyShape)...)
		attrs = append(attrs, attr{"type", sg.kind}, attr{"size", formatFloats(sg.size...)})

		if class == RoleVisual {
			material := part.Name + "_material"
			g.assets.RegisterMaterial(material, part.Color)
			attrs = append(attrs, attr{"material", material})
		}

		g.w.leaf("geom", attrs...)
	}
}

// shapeGeom translates a shape into an MJCF geom type and size. MJCF sizes
// are half-extents and half-lengths.
type shapeGeom struct {
	kind string
	size []float64
}

func (s *shapeGeom) VisitBox(b robot.Box) {
	s.kind = "box"
	s.size = []float64{b.Size.X / 2, b.Size.Y / 2, b.Size.Z / 2}
}

func (s *shapeGeom) VisitCylinder(c robot.Cylinder) {
	s.kind = "cylinder"
	s.size = []float64{c.Radius, c.Length / 2}
}

func (s *shapeGeom) VisitSphere(sp robot.Sphere) {
	s.kind = "sphere"
	s.size = []float64{sp.Radius}
}
