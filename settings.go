package gopapilo

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Settings maps parameter keys to values. Values may be bool, int32,
// float64 or string. Plain ints, which is what most decoders produce for
// integer literals, are set as int32 when they fit. If papilo expects a
// real for that key, the int is set again as a float64, so a time limit
// of 30 needs no decimal point.
type Settings map[string]interface{}

// ApplySettings sets every parameter in settings on solver, in key order,
// and stops at the first one that fails. Parameters set before the
// failure stay set.
func ApplySettings(solver *Solver, settings Settings) error {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var err error

		switch v := settings[key].(type) {
		case bool:
			err = SetParameter(solver, key, v)
		case int32:
			err = SetParameter(solver, key, v)
		case int:
			err = setIntSetting(solver, key, v)
		case float64:
			err = SetParameter(solver, key, v)
		case string:
			err = SetParameter(solver, key, v)
		default:
			return fmt.Errorf("setting %q: unsupported value type %T", key, v)
		}

		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}

	return nil
}

// setIntSetting tries v as an integer parameter first and falls back to a
// real one when papilo reports the key as having a different type.
func setIntSetting(solver *Solver, key string, v int) error {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		err := SetParameter(solver, key, int32(v))
		if !errors.Is(err, ParamWrongType) {
			return err
		}
	}

	err := SetParameter(solver, key, float64(v))
	if errors.Is(err, ParamWrongType) && (v < math.MinInt32 || v > math.MaxInt32) {
		return fmt.Errorf("%d does not fit in an int32", v)
	}
	return err
}
