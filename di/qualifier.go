package di

// selectCandidate picks exactly one descriptor for dep among candidates.
//
// With a qualifier, descriptors declaring that qualifier win; a descriptor
// whose id equals the qualifier is used only when none declares it. Without
// a qualifier, a single candidate wins, otherwise the single primary one.
// No match is UnsatisfiedDependency, more than one is AmbiguousMatch.
func selectCandidate(dep Dependency, candidates []*entry, requiredBy string) (*entry, error) {
	if len(candidates) == 0 {
		return nil, errUnsatisfied(dep, requiredBy)
	}

	if dep.Qualifier != "" {
		matched := filter(candidates, func(e *entry) bool { return e.desc.Qualifier == dep.Qualifier })
		if len(matched) == 0 {
			matched = filter(candidates, func(e *entry) bool { return e.desc.ID == dep.Qualifier })
		}
		switch len(matched) {
		case 0:
			return nil, errUnsatisfied(dep, requiredBy)
		case 1:
			return matched[0], nil
		default:
			return nil, errAmbiguous(dep, ids(matched), requiredBy)
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	primaries := filter(candidates, func(e *entry) bool { return e.desc.Primary })
	if len(primaries) == 1 {
		return primaries[0], nil
	}
	return nil, errAmbiguous(dep, ids(candidates), requiredBy)
}

func filter(entries []*entry, keep func(*entry) bool) []*entry {
	var out []*entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func ids(entries []*entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.desc.ID
	}
	return out
}
