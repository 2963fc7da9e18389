package config

// MergeChildConfig combines a parent scope's configuration with a child
// scope's overrides. Child values win key by key. Mergeable options set on
// both sides are combined instead: list values concatenate parent-first,
// object values shallow-merge with child keys winning.
//
// An empty or nil child returns the parent unchanged.
func MergeChildConfig(parent, child ConfigMap) ConfigMap {
	if len(child) == 0 {
		return parent
	}

	merged := make(ConfigMap, len(parent)+len(child))
	for key, value := range parent {
		merged[key] = value
	}
	for key, value := range child {
		merged[key] = value
	}

	for _, opt := range options {
		if !opt.Mergeable {
			continue
		}
		parentValue, parentOK := parent[opt.Name]
		childValue, childOK := child[opt.Name]
		if !parentOK || !childOK || !hasValue(parentValue) || !hasValue(childValue) {
			continue
		}
		if opt.Type == TypeList {
			merged[opt.Name] = concatLists(parentValue, childValue)
		} else {
			merged[opt.Name] = mergeObjects(parentValue, childValue)
		}
	}

	return merged
}

// hasValue reports whether a configuration value counts as set for merge
// purposes. Empty lists and objects count as set; nil, empty strings, and
// false do not.
func hasValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	default:
		return true
	}
}

func concatLists(parent, child any) []any {
	parentList := ToList(parent)
	childList := ToList(child)
	combined := make([]any, 0, len(parentList)+len(childList))
	combined = append(combined, parentList...)
	combined = append(combined, childList...)
	return combined
}

func mergeObjects(parent, child any) map[string]any {
	parentObject := toObject(parent)
	childObject := toObject(child)
	combined := make(map[string]any, len(parentObject)+len(childObject))
	for key, value := range parentObject {
		combined[key] = value
	}
	for key, value := range childObject {
		combined[key] = value
	}
	return combined
}

// ToList normalizes a configuration value to a list. Scalars become a
// single-element list, so options that allow a bare string still merge
// correctly. A nil value yields a nil list.
func ToList(v any) []any {
	switch value := v.(type) {
	case nil:
		return nil
	case []any:
		return value
	case []string:
		list := make([]any, len(value))
		for i, s := range value {
			list[i] = s
		}
		return list
	default:
		return []any{value}
	}
}

func toObject(v any) map[string]any {
	switch value := v.(type) {
	case map[string]any:
		return value
	case ConfigMap:
		return value
	default:
		return nil
	}
}
