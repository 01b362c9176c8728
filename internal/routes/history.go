package routes

import (
	"path"
	"strings"
)

// History is path-based (non-hash) navigation rooted at a base path,
// e.g. "/" or "/app".
type History struct {
	base string
}

// NewHistory creates a History rooted at base. An empty base means "/".
func NewHistory(base string) *History {
	b := path.Clean("/" + strings.Trim(base, "/"))
	return &History{base: b}
}

// Base returns the normalized base path.
func (h *History) Base() string {
	return h.base
}

// Href returns the browser location for an application path.
func (h *History) Href(p string) string {
	if h.base == "/" {
		return clean(p)
	}
	if clean(p) == RootPath {
		return h.base + "/"
	}
	return h.base + clean(p)
}

// Strip removes the base from a browser location. ok is false when the
// location lies outside the base.
func (h *History) Strip(location string) (string, bool) {
	p := clean(location)
	if h.base == "/" {
		return p, true
	}
	if p == h.base {
		return RootPath, true
	}
	if rest, found := strings.CutPrefix(p, h.base+"/"); found {
		return "/" + rest, true
	}
	return "", false
}

// Resolve maps a browser location to a route. Locations outside the
// base resolve like any unknown path.
func (h *History) Resolve(location string) Match {
	p, ok := h.Strip(location)
	if !ok {
		m := Resolve(DefaultPath)
		m.RedirectedFrom = clean(location)
		m.Matched = false
		return m
	}
	return Resolve(p)
}
