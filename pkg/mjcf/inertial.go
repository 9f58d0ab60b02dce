package mjcf

import "github.com/Faultbox/robomjcf/pkg/robot"

// emitInertial writes the <inertial> element of a body. The tensor entries
// are written as xx yy zz xy xz yz. mp must already be expressed in the body
// frame.
func emitInertial(w *xmlWriter, mp robot.MassProperties) {
	i := mp.Inertia
	w.leaf("inertial",
		attr{"pos", formatVec3(mp.COM)},
		attr{"mass", formatFloat(mp.Mass)},
		attr{"fullinertia", formatFloats(
			i.At(0, 0), i.At(1, 1), i.At(2, 2),
			i.At(0, 1), i.At(0, 2), i.At(1, 2),
		)},
	)
}
