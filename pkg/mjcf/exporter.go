// Package mjcf exports a robot.Robot as a MuJoCo MJCF document.
//
// An Exporter walks the link tree from the base link, writes one <body> per
// link with its pose relative to the parent body, and collects the meshes,
// materials and actuated joints met on the way into the <asset> and
// <actuator> sections.
package mjcf

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// Export errors.
var (
	ErrNoBaseLink    = errors.New("robot has no base link")
	ErrAdditionalXML = errors.New("reading additional XML")
)

// SceneFileName is the companion file written next to the robot document.
const SceneFileName = "scene.xml"

//go:embed assets/scene.xml
var sceneXML []byte

// SceneXML returns the companion scene document.
func SceneXML() []byte {
	return append([]byte(nil), sceneXML...)
}

// Options controls what the exporter emits.
type Options struct {
	// NoDynamics omits <inertial> elements; MuJoCo then infers mass
	// properties from the geoms.
	NoDynamics bool
	// ShapesOnly drops meshes wherever collision content is requested, so
	// collisions only use primitive shapes.
	ShapesOnly bool
	// DrawCollisions renders the collision content in the visual class.
	DrawCollisions bool
	// AdditionalXMLFile is spliced verbatim after the <option> element.
	// Empty disables it.
	AdditionalXMLFile string
}

// Exporter builds MJCF documents. All accumulated state is reset at the
// start of every Build, so an Exporter never carries assets from one robot
// into the next. It is not safe for concurrent use.
type Exporter struct {
	opts Options
	log  *zap.Logger

	w      *xmlWriter
	assets *AssetRegistry
	geoms  *geometryEmitter
	props  map[*robot.Joint]robot.JointProperties
	joints []exportedJoint // Pre-order, drives the actuator section
}

// New returns an Exporter. A nil logger discards warnings.
func New(opts Options, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{opts: opts, log: log}
}

// Build is a convenience wrapper creating a fresh Exporter for one robot.
func Build(r *robot.Robot, opts Options, log *zap.Logger) ([]byte, error) {
	return New(opts, log).Build(r)
}

// Assets returns the registry filled by the last Build.
func (e *Exporter) Assets() *AssetRegistry {
	return e.assets
}

func (e *Exporter) reset() {
	e.w = &xmlWriter{}
	e.assets = NewAssetRegistry()
	e.geoms = &geometryEmitter{w: e.w, assets: e.assets, shapesOnly: e.opts.ShapesOnly}
	e.props = make(map[*robot.Joint]robot.JointProperties)
	e.joints = nil
}

// Build returns the MJCF document for r. Nothing is returned on error.
func (e *Exporter) Build(r *robot.Robot) ([]byte, error) {
	e.reset()

	base := r.BaseLink()
	if base == nil {
		return nil, ErrNoBaseLink
	}

	for _, j := range r.Joints {
		props, err := robot.ParseJointProperties(j.Properties)
		if err != nil {
			return nil, fmt.Errorf("joint %s: %w", j.Name, err)
		}
		e.props[j] = props
	}

	var additional string
	if e.opts.AdditionalXMLFile != "" {
		data, err := os.ReadFile(e.opts.AdditionalXMLFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAdditionalXML, err)
		}
		additional = string(data)
	}

	e.w.raw(`<?xml version="1.0" ?>`)
	e.w.comment("Generated using robomjcf")
	e.w.open("mujoco", attr{"model", r.Name})
	e.w.leaf("compiler", attr{"angle", "radian"}, attr{"meshdir", "."})
	e.w.leaf("option", attr{"noslip_iterations", "1"})

	if additional != "" {
		e.w.raw(additional)
	}

	e.writeDefaults()

	e.w.open("worldbody")
	e.addLink(r, base, nil, math.Identity())
	e.w.close("worldbody")

	e.assets.emit(e.w)
	emitActuators(e.w, e.joints)

	e.w.close("mujoco")

	e.log.Debug("built MJCF document",
		zap.String("robot", r.Name),
		zap.Int("joints", len(e.joints)),
		zap.Int("assets", e.assets.Len()),
	)
	return e.w.Bytes(), nil
}

func (e *Exporter) writeDefaults() {
	e.w.open("default")
	e.w.leaf("joint", attr{"frictionloss", "0.1"}, attr{"armature", "0.005"})
	e.w.leaf("position", attr{"kp", "50"}, attr{"kv", "5"})
	e.w.open("default", attr{"class", string(RoleVisual)})
	e.w.leaf("geom", attr{"type", "mesh"}, attr{"contype", "0"}, attr{"conaffinity", "0"}, attr{"group", "2"})
	e.w.close("default")
	e.w.open("default", attr{"class", string(RoleCollision)})
	e.w.leaf("geom", attr{"group", "3"})
	e.w.close("default")
	e.w.close("default")
}

// WriteXML builds the document for r, writes it to filename and copies the
// companion scene file into the same directory. The document is fully built
// before any file is created.
func (e *Exporter) WriteXML(r *robot.Robot, filename string) error {
	doc, err := e.Build(r)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filename, doc, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	e.log.Info("wrote robot", zap.String("path", filename))

	scenePath := filepath.Join(dir, SceneFileName)
	if err := os.WriteFile(scenePath, sceneXML, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", scenePath, err)
	}
	e.log.Info("wrote scene", zap.String("path", scenePath))
	return nil
}
