package pathpattern

import (
	"iter"
)

// Flatten enumerates every group-free node sequence the template can
// match. At each group the sequences that include it come before the
// ones that omit it, and earlier groups vary slowest:
//
//	{a}{b} → [a b], [a], [b], []
//
// The sequence is produced lazily; ranging over it again re-runs the
// enumeration from the start.
func (t *Template) Flatten() iter.Seq[[]Node] {
	return flatten(t.Nodes)
}

func flatten(nodes []Node) iter.Seq[[]Node] {
	return func(yield func([]Node) bool) {
		expand(nodes, 0, nil, yield)
	}
}

// expand appends nodes[i:] to prefix, forking at every group. It returns
// false once yield asks to stop.
//
// Every append goes through a full slice expression, so prefixes shared
// between branches are never written to and yielded slices stay valid.
func expand(nodes []Node, i int, prefix []Node, yield func([]Node) bool) bool {
	for ; i < len(nodes); i++ {
		group, ok := nodes[i].(Group)
		if !ok {
			prefix = append(prefix[:len(prefix):len(prefix)], nodes[i])
			continue
		}

		rest := i + 1
		include := expand(group.Nodes, 0, prefix, func(inner []Node) bool {
			return expand(nodes, rest, inner, yield)
		})
		if !include {
			return false
		}
	}
	return yield(prefix)
}
