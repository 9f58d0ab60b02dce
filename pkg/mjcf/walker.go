package mjcf

import (
	"go.uber.org/zap"

	"github.com/Faultbox/robomjcf/pkg/math"
	"github.com/Faultbox/robomjcf/pkg/robot"
)

// jointKinds maps joint types to MJCF joint types. Fixed joints have no
// entry: the body is welded to its parent by omitting the joint element.
var jointKinds = map[robot.JointType]string{
	robot.JointRevolute:  "hinge",
	robot.JointPrismatic: "slide",
}

// addLink writes the body of link and, recursively, its subtree.
// parentJoint is nil for the base link.
func (e *Exporter) addLink(r *robot.Robot, link *robot.Link, parentJoint *robot.Joint, tWorldParent math.Mat4) {
	tWorldLink := math.Identity()
	if parentJoint != nil {
		tWorldLink = parentJoint.World
	}

	e.w.comment("Link " + link.Name)
	bodyAttrs := append([]attr{{"name", link.Name}}, poseAttrs(math.Relative(tWorldParent, tWorldLink))...)
	e.w.open("body", bodyAttrs...)

	if parentJoint == nil {
		e.w.leaf("freejoint", attr{"name", "root"})
	} else {
		e.addJoint(parentJoint)
	}

	if !e.opts.NoDynamics && link.Dynamics != nil {
		emitInertial(e.w, link.Dynamics.MassProperties(tWorldLink))
	}

	visualPolicy := RoleVisual
	if e.opts.DrawCollisions {
		visualPolicy = RoleCollision
	}
	for _, part := range link.Parts {
		e.w.comment("Part " + part.Name)
		e.geoms.emit(part, tWorldLink, RoleVisual, visualPolicy)
		e.geoms.emit(part, tWorldLink, RoleCollision, RoleCollision)
	}

	for _, frame := range link.Frames {
		e.w.comment("Frame " + frame.Name)
		siteAttrs := append([]attr{{"name", frame.Name}}, poseAttrs(math.Relative(tWorldLink, frame.World))...)
		e.w.leaf("site", siteAttrs...)
	}

	for _, joint := range r.ChildJoints(link) {
		e.addLink(r, joint.Child, joint, tWorldLink)
	}

	e.w.close("body")
}

// addJoint writes the joint element connecting a body to its parent and
// records the joint for the actuator section.
func (e *Exporter) addJoint(joint *robot.Joint) {
	props := e.props[joint]
	e.joints = append(e.joints, exportedJoint{joint: joint, props: props})

	e.w.comment("Joint from " + joint.Parent.Name + " to " + joint.Child.Name)

	kind, ok := jointKinds[joint.Type]
	if !ok {
		e.log.Warn("joint type is not supported in MuJoCo, welding child to parent",
			zap.String("joint", joint.Name),
			zap.Stringer("type", joint.Type),
		)
		e.w.comment("Joint " + joint.Name + " is " + joint.Type.String() + ": no degrees of freedom")
		return
	}

	attrs := []attr{{"name", joint.Name}, {"type", kind}}
	if props.Class != "" {
		attrs = append(attrs, attr{"class", props.Class})
	}
	for _, p := range []struct {
		name string
		v    *float64
	}{
		{"frictionloss", props.FrictionLoss},
		{"armature", props.Armature},
		{"damping", props.Damping},
		{"stiffness", props.Stiffness},
	} {
		if p.v != nil {
			attrs = append(attrs, attr{p.name, formatFloat(*p.v)})
		}
	}
	e.w.leaf("joint", attrs...)
}
