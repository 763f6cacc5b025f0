package feature

import "math"

// AsFloat coerces a sampled property value to float64.
// Rules are user code, so numeric kinds are normalized here once instead of
// in every transform.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

// AsInt coerces a sampled property value to int. Floats qualify only when
// integral.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// AsVector coerces a sampled property value to a []float64.
// Scalars become one-element vectors.
func AsVector(v any) ([]float64, bool) {
	switch n := v.(type) {
	case []float64:
		return n, true
	case []any:
		out := make([]float64, len(n))
		for i, e := range n {
			f, ok := AsFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]float64, len(n))
		for i, e := range n {
			out[i] = float64(e)
		}
		return out, true
	}
	if f, ok := AsFloat(v); ok {
		return []float64{f}, true
	}
	return nil, false
}
