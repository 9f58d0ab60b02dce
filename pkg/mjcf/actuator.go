package mjcf

import "github.com/Faultbox/robomjcf/pkg/robot"

// positionActuator is the only actuator kind that takes a control range
// from the joint limits.
const positionActuator = "position"

// exportedJoint pairs a joint with its validated properties.
type exportedJoint struct {
	joint *robot.Joint
	props robot.JointProperties
}

// actuatorAttrs returns the element name and attributes of the actuator
// driving ej, or ok=false when the joint is not actuated.
func actuatorAttrs(ej exportedJoint) (tag string, attrs []attr, ok bool) {
	j, p := ej.joint, ej.props
	if !p.Actuated || j.Type == robot.JointFixed {
		return "", nil, false
	}

	attrs = []attr{{"name", j.Name}, {"joint", j.Name}}
	if p.Class != "" {
		attrs = append(attrs, attr{"class", p.Class})
	}
	for _, gain := range []struct {
		name string
		v    *float64
	}{{"kp", p.Kp}, {"kd", p.Kd}, {"ki", p.Ki}} {
		if gain.v != nil {
			attrs = append(attrs, attr{gain.name, formatFloat(*gain.v)})
		}
	}
	if p.Effort != nil {
		attrs = append(attrs, attr{"forcerange", formatFloats(-*p.Effort, *p.Effort)})
	}
	if j.Limits != nil && p.Actuator == positionActuator {
		attrs = append(attrs, attr{"ctrlrange", formatFloats(j.Limits.Lower, j.Limits.Upper)})
	}
	return p.Actuator, attrs, true
}

// emitActuators writes the <actuator> section, one element per actuated
// joint, in the order given.
func emitActuators(w *xmlWriter, joints []exportedJoint) {
	w.open("actuator")
	for _, ej := range joints {
		if tag, attrs, ok := actuatorAttrs(ej); ok {
			w.leaf(tag, attrs...)
		}
	}
	w.close("actuator")
}
