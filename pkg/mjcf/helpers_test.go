package mjcf

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// xmlNode is a generic element tree used to inspect exported documents.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

func parseDoc(t *testing.T, data []byte) xmlNode {
	t.Helper()
	var root xmlNode
	require.NoError(t, xml.Unmarshal(data, &root), "document should be well-formed XML")
	return root
}

func (n xmlNode) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n xmlNode) HasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Direct returns the direct children with the given tag.
func (n xmlNode) Direct(tag string) []xmlNode {
	var out []xmlNode
	for _, c := range n.Children {
		if c.XMLName.Local == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindAll returns every descendant with the given tag, depth first.
func (n xmlNode) FindAll(tag string) []xmlNode {
	var out []xmlNode
	for _, c := range n.Children {
		if c.XMLName.Local == tag {
			out = append(out, c)
		}
		out = append(out, c.FindAll(tag)...)
	}
	return out
}

// Body returns the body element with the given name.
func (n xmlNode) Body(t *testing.T, name string) xmlNode {
	t.Helper()
	for _, b := range n.FindAll("body") {
		if b.Attr("name") == name {
			return b
		}
	}
	t.Fatalf("body %q not found", name)
	return xmlNode{}
}

func tagNames(nodes []xmlNode) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.XMLName.Local
	}
	return names
}

// twoLinkRobot is a base link L0 with a revolute joint J1 to L1. L1 owns
// a part with a single 2x2x2 collision box.
func twoLinkRobot() *robot.Robot {
	l0 := &robot.Link{
		Name:     "L0",
		Dynamics: robot.FixedDynamics{Mass: 1, Inertia: math.Mat3Identity()},
	}
	l1 := &robot.Link{
		Name:     "L1",
		Dynamics: robot.FixedDynamics{Mass: 0.5, Inertia: math.Mat3Identity()},
		Parts: []*robot.Part{{
			Name:  "box_part",
			Color: robot.Color{R: 0.5, G: 0.5, B: 0.5},
			World: math.Translate(0, 0, 1),
			Shapes: []robot.Shape{
				robot.Box{Size: math.Vec3{X: 2, Y: 2, Z: 2}, Local: math.Identity()},
			},
		}},
	}
	return &robot.Robot{
		Name:  "two_link",
		Links: []*robot.Link{l0, l1},
		Joints: []*robot.Joint{{
			Name:   "J1",
			Type:   robot.JointRevolute,
			Parent: l0,
			Child:  l1,
			World:  math.Translate(0, 0, 1),
		}},
		Base: l0,
	}
}

// meshPart returns a part referencing a mesh file and located at world.
func meshPart(name, file string, world math.Mat4) *robot.Part {
	return &robot.Part{
		Name:     name,
		MeshFile: file,
		Color:    robot.Color{R: 1, G: 0, B: 0},
		World:    world,
	}
}

// parseFragment parses the elements written to w under a synthetic root.
func parseFragment(t *testing.T, w *xmlWriter) xmlNode {
	t.Helper()
	return parseDoc(t, []byte("<root>"+string(w.Bytes())+"</root>"))
}
