package robot

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidProperty is returned when a joint property has the wrong type
// or an unsupported value.
var ErrInvalidProperty = errors.New("invalid joint property")

// DefaultActuator is the actuator kind used when a joint does not name one.
const DefaultActuator = "position"

// actuatorKinds are the MuJoCo actuator elements a joint may name.
var actuatorKinds = map[string]bool{
	"motor":       true,
	"position":    true,
	"velocity":    true,
	"intvelocity": true,
	"damper":      true,
	"cylinder":    true,
	"muscle":      true,
	"adhesion":    true,
	"general":     true,
}

// JointProperties is the typed view of Joint.Properties. Defaults are
// applied here once; emitters never consult the raw map.
type JointProperties struct {
	Actuated bool   // "actuated", default true
	Actuator string // "type", default DefaultActuator
	Class    string // "class", empty if unset

	// Control gains
	Kp, Kd, Ki *float64

	// Effort is the symmetric force limit, nil if unset.
	Effort *float64

	// Passive joint dynamics. "friction" is accepted as an alias of
	// "frictionloss"; the explicit key wins when both are present.
	FrictionLoss *float64
	Armature     *float64
	Damping      *float64
	Stiffness    *float64
}

// ParseJointProperties validates props and fills in defaults. Unknown keys
// are ignored.
func ParseJointProperties(props map[string]any) (JointProperties, error) {
	jp := JointProperties{
		Actuated: true,
		Actuator: DefaultActuator,
	}

	var err error
	if v, ok := props["actuated"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return jp, fmt.Errorf("%w: actuated: expected bool, got %T", ErrInvalidProperty, v)
		}
		jp.Actuated = b
	}
	if jp.Actuator, err = stringProp(props, "type", DefaultActuator); err != nil {
		return jp, err
	}
	if !actuatorKinds[jp.Actuator] {
		return jp, fmt.Errorf("%w: type: unknown actuator %q", ErrInvalidProperty, jp.Actuator)
	}
	if jp.Class, err = stringProp(props, "class", ""); err != nil {
		return jp, err
	}

	numbers := []struct {
		key string
		dst **float64
	}{
		{"kp", &jp.Kp},
		{"kd", &jp.Kd},
		{"ki", &jp.Ki},
		{"effort", &jp.Effort},
		{"friction", &jp.FrictionLoss},
		{"frictionloss", &jp.FrictionLoss},
		{"armature", &jp.Armature},
		{"damping", &jp.Damping},
		{"stiffness", &jp.Stiffness},
	}
	for _, n := range numbers {
		v, ok := props[n.key]
		if !ok {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return jp, fmt.Errorf("%w: %s: %v", ErrInvalidProperty, n.key, err)
		}
		*n.dst = &f
	}

	return jp, nil
}

func stringProp(props map[string]any, key, def string) (string, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	s, isString := v.(string)
	if !isString || s == "" {
		return def, fmt.Errorf("%w: %s: expected non-empty string, got %v", ErrInvalidProperty, key, v)
	}
	return s, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
