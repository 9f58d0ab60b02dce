package modelfile

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// ErrInvalidModel wraps every structural problem found in a model file.
var ErrInvalidModel = errors.New("invalid model")

// Load reads and builds the robot described by the YAML file at path.
func Load(path string) (*robot.Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a robot from YAML. All validation problems are reported
// together; use multierr.Errors to list them.
func Parse(data []byte) (*robot.Robot, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Build()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidModel}, args...)...)
}

// Build converts the file into a robot and checks that its joints form a
// tree rooted at the base link.
func (f *File) Build() (*robot.Robot, error) {
	var errs error

	r := &robot.Robot{Name: f.Name}
	if r.Name == "" {
		errs = multierr.Append(errs, invalid("robot has no name"))
	}

	links := make(map[string]*robot.Link, len(f.Links))
	for _, ls := range f.Links {
		if _, dup := links[ls.Name]; dup {
			errs = multierr.Append(errs, invalid("duplicate link %q", ls.Name))
			continue
		}
		link, err := ls.build()
		errs = multierr.Append(errs, err)
		links[ls.Name] = link
		r.Links = append(r.Links, link)
	}

	r.Base = links[f.Base]
	if r.Base == nil {
		errs = multierr.Append(errs, invalid("base link %q not found", f.Base))
	}

	parentOf := make(map[string]string)
	for _, js := range f.Joints {
		joint, err := js.build(links)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if joint.Child == r.Base {
			errs = multierr.Append(errs, invalid("joint %q: base link %q cannot be a child", js.Name, f.Base))
			continue
		}
		if prev, ok := parentOf[js.Child]; ok {
			errs = multierr.Append(errs, invalid("link %q is the child of both %q and %q", js.Child, prev, js.Name))
			continue
		}
		parentOf[js.Child] = js.Name
		r.Joints = append(r.Joints, joint)
	}

	if errs != nil {
		return nil, errs
	}

	// With one parent per link, anything not reachable from the base is
	// either detached or part of a cycle.
	reached := map[*robot.Link]bool{r.Base: true}
	stack := []*robot.Link{r.Base}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, j := range r.ChildJoints(l) {
			reached[j.Child] = true
			stack = append(stack, j.Child)
		}
	}
	for _, l := range r.Links {
		if !reached[l] {
			errs = multierr.Append(errs, invalid("link %q is not connected to base %q", l.Name, f.Base))
		}
	}
	if errs != nil {
		return nil, errs
	}

	return r, nil
}

func (ls LinkSpec) build() (*robot.Link, error) {
	var errs error
	if ls.Name == "" {
		errs = multierr.Append(errs, invalid("link without a name"))
	}

	link := &robot.Link{Name: ls.Name}

	if ls.Mass != nil {
		i := ls.Inertia
		link.Dynamics = robot.StaticDynamics{
			Mass:     *ls.Mass,
			WorldCOM: math.Vec3{X: ls.COM[0], Y: ls.COM[1], Z: ls.COM[2]},
			WorldInertia: math.Mat3{
				i[0], i[3], i[4],
				i[3], i[1], i[5],
				i[4], i[5], i[2],
			},
		}
	}

	for _, ps := range ls.Parts {
		part, err := ps.build()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("link %q: %w", ls.Name, err))
			continue
		}
		link.Parts = append(link.Parts, part)
	}

	for _, fs := range ls.Frames {
		link.Frames = append(link.Frames, robot.Frame{Name: fs.Name, World: fs.Origin.Mat4()})
	}

	return link, errs
}

func (ps PartSpec) build() (*robot.Part, error) {
	part := &robot.Part{
		Name:     ps.Name,
		MeshFile: ps.Mesh,
		Color:    robot.Color(ps.Color),
		World:    ps.Origin.Mat4(),
	}

	var errs error
	for i, ss := range ps.Shapes {
		shape, err := ss.build()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("part %q shape %d: %w", ps.Name, i, err))
			continue
		}
		part.Shapes = append(part.Shapes, shape)
	}
	if ps.Mesh == "" && len(ps.Shapes) == 0 {
		errs = multierr.Append(errs, invalid("part %q has neither a mesh nor shapes", ps.Name))
	}
	return part, errs
}

func (ss ShapeSpec) build() (robot.Shape, error) {
	local := ss.Origin.Mat4()

	var shapes []robot.Shape
	if ss.Box != nil {
		s := ss.Box.Size
		shapes = append(shapes, robot.Box{Size: math.Vec3{X: s[0], Y: s[1], Z: s[2]}, Local: local})
	}
	if ss.Cylinder != nil {
		shapes = append(shapes, robot.Cylinder{Radius: ss.Cylinder.Radius, Length: ss.Cylinder.Length, Local: local})
	}
	if ss.Sphere != nil {
		shapes = append(shapes, robot.Sphere{Radius: ss.Sphere.Radius, Local: local})
	}

	if len(shapes) != 1 {
		return nil, invalid("expected exactly one of box, cylinder or sphere, got %d", len(shapes))
	}
	return shapes[0], nil
}

func (js JointSpec) build(links map[string]*robot.Link) (*robot.Joint, error) {
	jt, err := robot.ParseJointType(js.Type)
	if err != nil {
		return nil, invalid("joint %q: %v", js.Name, err)
	}

	parent, child := links[js.Parent], links[js.Child]
	var errs error
	if parent == nil {
		errs = multierr.Append(errs, invalid("joint %q: unknown parent link %q", js.Name, js.Parent))
	}
	if child == nil {
		errs = multierr.Append(errs, invalid("joint %q: unknown child link %q", js.Name, js.Child))
	}
	if errs != nil {
		return nil, errs
	}

	joint := &robot.Joint{
		Name:       js.Name,
		Type:       jt,
		Parent:     parent,
		Child:      child,
		World:      js.Origin.Mat4(),
		Properties: js.Properties,
	}
	if js.Limits != nil {
		joint.Limits = &robot.Limits{Lower: js.Limits[0], Upper: js.Limits[1]}
	}
	return joint, nil
}
