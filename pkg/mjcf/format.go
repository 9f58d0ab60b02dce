package mjcf

import (
	"strconv"
	"strings"

	"github.com/Faultbox/robomjcf/pkg/math"
)

// formatFloat renders v with the shortest representation that parses back
// to the same float64. Output is stable across runs and loses no precision.
func formatFloat(v float64) string {
	if v == 0 {
		// Avoid "-0" in the document.
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFloats joins values with single spaces.
func formatFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

func formatVec3(v math.Vec3) string {
	return formatFloats(v.X, v.Y, v.Z)
}

// poseAttrs returns the pos and quat attributes locating m in its parent.
// MJCF quaternions are scalar-first.
func poseAttrs(m math.Mat4) []attr {
	pos, q := math.PoseAttributes(m)
	wxyz := q.WXYZ()
	return []attr{
		{"pos", formatVec3(pos)},
		{"quat", formatFloats(wxyz[:]...)},
	}
}
