package render

import "github.com/itsmostafa/chartpanel/internal/panel"

// mergeValue merges next into prev. Objects merge key by key, component
// arrays merge element by element, anything else is replaced.
func mergeValue(prev, next any) any {
	switch n := next.(type) {
	case map[string]any:
		p, ok := asMap(prev)
		if !ok {
			return copyMap(n)
		}
		merged := copyMap(p)
		for key, value := range n {
			merged[key] = mergeValue(merged[key], value)
		}
		return merged
	case panel.Option:
		return mergeValue(prev, map[string]any(n))
	case []any:
		p, ok := prev.([]any)
		if !ok {
			return copyValue(n)
		}
		merged := make([]any, len(n))
		for i, item := range n {
			if i < len(p) {
				merged[i] = mergeValue(p[i], item)
			} else {
				merged[i] = copyValue(item)
			}
		}
		return merged
	default:
		return next
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case panel.Option:
		return m, true
	default:
		return nil, false
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case panel.Option:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
