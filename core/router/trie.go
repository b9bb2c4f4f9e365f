package router

import (
	"fmt"
	"strings"
)

// trie is a segment-wise path matcher. Static segments win over
// "{name}" placeholders, which win over the "*" wildcard; neither a
// placeholder nor the wildcard ever spans a '/'.
type trie struct {
	root *node
}

type node struct {
	children  map[string]*node // static segments
	param     *node
	paramName string
	wildcard  *node
	route     *Route
}

func newTrie() *trie {
	return &trie{root: &node{}}
}

// insert registers a route under its path pattern. Structural
// collisions (a duplicate pattern, or placeholders with different
// names in the same position) are build-time errors.
func (t *trie) insert(path string, rt *Route) error {
	n := t.root

	for _, seg := range splitPath(path) {
		switch {
		case seg == "*":
			if n.wildcard == nil {
				n.wildcard = &node{}
			}
			n = n.wildcard

		case strings.HasPrefix(seg, "{") || strings.HasSuffix(seg, "}"):
			if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") || len(seg) < 3 {
				return fmt.Errorf("malformed placeholder %q in %q", seg, path)
			}
			name := seg[1 : len(seg)-1]
			if n.param == nil {
				n.param = &node{}
				n.paramName = name
			} else if n.paramName != name {
				return fmt.Errorf("conflicting placeholders {%s} and {%s} in %q", n.paramName, name, path)
			}
			n = n.param

		default:
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			child, ok := n.children[seg]
			if !ok {
				child = &node{}
				n.children[seg] = child
			}
			n = child
		}
	}

	if n.route != nil {
		return fmt.Errorf("route %q conflicts with existing route %q", path, n.route.Path)
	}
	n.route = rt
	return nil
}

// lookup walks the trie for path and returns the matched route with
// its placeholder captures, or nil when nothing matches.
func (t *trie) lookup(path string) (*Route, map[string]string) {
	return t.root.walk(splitPath(path), nil)
}

func (n *node) walk(segs []string, params map[string]string) (*Route, map[string]string) {
	if len(segs) == 0 {
		if n.route != nil {
			return n.route, params
		}
		return nil, nil
	}

	seg := segs[0]

	if child, ok := n.children[seg]; ok {
		if rt, p := child.walk(segs[1:], params); rt != nil {
			return rt, p
		}
	}

	if n.param != nil {
		// Copy before capturing so a failed branch cannot leak its
		// captures into a sibling's result.
		p := make(map[string]string, len(params)+1)
		for k, v := range params {
			p[k] = v
		}
		p[n.paramName] = seg
		if rt, p := n.param.walk(segs[1:], p); rt != nil {
			return rt, p
		}
	}

	if n.wildcard != nil {
		return n.wildcard.walk(segs[1:], params)
	}

	return nil, nil
}

// splitPath splits a path into its non-empty segments, so duplicate
// and trailing slashes are equivalent at match time. The root path "/"
// yields no segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}
