// Package modelfile reads robot descriptions from YAML files.
//
// Poses of joints, parts and frames are given in world coordinates, like the
// CAD assemblies they are usually generated from; shape origins are relative
// to their part. Angles are radians.
package modelfile

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// File is the top-level document.
type File struct {
	Name   string      `yaml:"name"`
	Base   string      `yaml:"base"`
	Links  []LinkSpec  `yaml:"links"`
	Joints []JointSpec `yaml:"joints"`
}

// Origin is a pose given as translation and roll/pitch/yaw.
type Origin struct {
	XYZ [3]float64 `yaml:"xyz"`
	RPY [3]float64 `yaml:"rpy"`
}

// Mat4 returns the transform described by o.
func (o Origin) Mat4() math.Mat4 {
	return math.FromRPY(
		math.Vec3{X: o.XYZ[0], Y: o.XYZ[1], Z: o.XYZ[2]},
		math.Vec3{X: o.RPY[0], Y: o.RPY[1], Z: o.RPY[2]},
	)
}

// LinkSpec describes a link. Mass properties are in world coordinates;
// Inertia is [ixx, iyy, izz, ixy, ixz, iyz] about the center of mass.
type LinkSpec struct {
	Name    string      `yaml:"name"`
	Mass    *float64    `yaml:"mass"`
	COM     [3]float64  `yaml:"com"`
	Inertia [6]float64  `yaml:"inertia"`
	Parts   []PartSpec  `yaml:"parts"`
	Frames  []FrameSpec `yaml:"frames"`
}

// FrameSpec is a named marker frame.
type FrameSpec struct {
	Name   string `yaml:"name"`
	Origin Origin `yaml:"origin"`
}

// PartSpec describes a part of a link.
type PartSpec struct {
	Name   string      `yaml:"name"`
	Mesh   string      `yaml:"mesh"`
	Color  Color       `yaml:"color"`
	Origin Origin      `yaml:"origin"`
	Shapes []ShapeSpec `yaml:"shapes"`
}

// ShapeSpec holds exactly one of Box, Cylinder or Sphere.
type ShapeSpec struct {
	Box *struct {
		Size [3]float64 `yaml:"size"`
	} `yaml:"box"`
	Cylinder *struct {
		Radius float64 `yaml:"radius"`
		Length float64 `yaml:"length"`
	} `yaml:"cylinder"`
	Sphere *struct {
		Radius float64 `yaml:"radius"`
	} `yaml:"sphere"`
	Origin Origin `yaml:"origin"`
}

// JointSpec describes a joint.
type JointSpec struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Parent     string         `yaml:"parent"`
	Child      string         `yaml:"child"`
	Origin     Origin         `yaml:"origin"`
	Limits     *[2]float64    `yaml:"limits"`
	Properties map[string]any `yaml:"properties"`
}

// Color accepts either an [r, g, b] list in [0, 1] or a "#rrggbb" string.
type Color robot.Color

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		hex, err := colorful.Hex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: color %q: %w", value.Line, value.Value, err)
		}
		*c = Color{R: hex.R, G: hex.G, B: hex.B}
		return nil
	case yaml.SequenceNode:
		var rgb []float64
		if err := value.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(rgb))
		}
		*c = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
		return nil
	default:
		return fmt.Errorf("line %d: color must be a list or a hex string", value.Line)
	}
}

// MarshalYAML writes colors as hex strings.
func (c Color) MarshalYAML() (any, error) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hex(), nil
}
