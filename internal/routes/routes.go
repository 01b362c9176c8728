// Package routes holds the page table of the podcast web client.
package routes

import (
	"path"
	"strings"
)

// View identifies the page a route renders.
type View string

const (
	// PodcastView is the generate form.
	PodcastView View = "PodcastView"
	// PodcastDetailView shows a generated episode.
	PodcastDetailView View = "PodcastDetailView"
)

// Route maps a path either to a View or to another path.
type Route struct {
	Path     string
	Name     string
	View     View
	Redirect string
}

// IsRedirect reports whether the route points at another path.
func (r Route) IsRedirect() bool {
	return r.Redirect != ""
}

// Paths of the navigable pages.
const (
	RootPath          = "/"
	PodcastPath       = "/podcast"
	PodcastDetailPath = "/podcast-detail"

	// DefaultPath is where the root and any unknown location end up.
	DefaultPath = PodcastPath
)

var table = []Route{
	{Path: RootPath, Redirect: PodcastPath},
	{Path: PodcastPath, Name: "Podcast", View: PodcastView},
	{Path: PodcastDetailPath, Name: "PodcastDetail", View: PodcastDetailView},
}

// maxRedirects guards against a redirect cycle in the table.
const maxRedirects = 8

// Table returns a copy of the route table.
func Table() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds the route registered for p exactly.
func Lookup(p string) (Route, bool) {
	for _, r := range table {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// Match is the result of resolving a location.
type Match struct {
	Route Route
	// RedirectedFrom is the requested path when redirects or the
	// unknown-path fallback were applied, empty otherwise.
	RedirectedFrom string
	// Matched is false when the location fell back to DefaultPath.
	Matched bool
}

// Resolve maps an application path (base already stripped) to the view
// route it ends up on. Unknown paths fall back to DefaultPath.
func Resolve(p string) Match {
	requested := clean(p)
	current := requested
	matched := true

	for range maxRedirects {
		r, ok := Lookup(current)
		if !ok {
			matched = false
			current = DefaultPath
			continue
		}

		if r.IsRedirect() {
			current = r.Redirect
			continue
		}

		m := Match{Route: r, Matched: matched}
		if r.Path != requested {
			m.RedirectedFrom = requested
		}
		return m
	}

	def, _ := Lookup(DefaultPath)
	return Match{Route: def, RedirectedFrom: requested}
}

func clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return RootPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
