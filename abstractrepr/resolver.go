package abstractrepr

// resolveReferences returns a copy of node in which every mapping that carries
// a "$ref" naming a registry key is replaced by the union of its remaining
// keys and the referenced fragment, the fragment winning on collision.
// Resolution is single level: keys brought in by a fragment are not walked
// again, so fragments must themselves be reference-free. A "$ref" absent from
// the registry is left untouched for downstream resolution.
//
// The returned tree never aliases node, but may share subtrees with registry
// fragments; callers must treat both as read-only.
func resolveReferences(node any, registry map[string]map[string]any) any {
	switch n := node.(type) {
	case map[string]any:
		if ref, ok := n["$ref"].(string); ok {
			if frag, found := registry[ref]; found {
				merged := make(map[string]any, len(n)+len(frag))
				for k, v := range n {
					if k != "$ref" {
						merged[k] = v
					}
				}
				for k, v := range frag {
					merged[k] = v
				}
				return merged
			}
		}
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = resolveReferences(v, registry)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = resolveReferences(v, registry)
		}
		return out
	default:
		return node
	}
}
