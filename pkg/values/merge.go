package values

// Clone deep-copies maps and slices. Other values are shared.
func Clone(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

// DeepMerge returns a new map holding base with overlay applied on top.
// Nested maps merge recursively; every other value, arrays included, is
// replaced by the overlay's value. Neither input is modified.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := Clone(base)
	for key, value := range overlay {
		next, ok := value.(map[string]any)
		if !ok {
			out[key] = deepCopy(value)
			continue
		}
		if current, ok := out[key].(map[string]any); ok {
			out[key] = DeepMerge(current, next)
			continue
		}
		out[key] = deepCopy(next)
	}
	return out
}

// Pick collects the values at the given paths, keyed by path. Missing paths
// map to nil.
func Pick(r Reader, paths []string) map[string]any {
	out := make(map[string]any, len(paths))
	for _, path := range paths {
		if r == nil {
			out[path] = nil
			continue
		}
		value, _ := r.Get(path)
		out[path] = value
	}
	return out
}

// MapReader adapts a plain map to Reader.
type MapReader map[string]any

// Get resolves a dotted path.
func (m MapReader) Get(path string) (any, bool) {
	return Get(m, path)
}
