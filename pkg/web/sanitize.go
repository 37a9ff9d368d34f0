package web

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy

	fragmentRef = regexp.MustCompile(`^#[A-Za-z][A-Za-z0-9_.:-]*$`)
)

// svgSanitizer strips anything beyond plain vector markup from SVG documents
// fetched from remote image services before they are served from this origin.
func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "rect", "circle", "title", "desc", "defs", "use")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "shape-rendering", "version", "role", "aria-hidden",
		).OnElements("svg")

		for _, el := range []string{"path", "rect", "circle"} {
			policy.AllowAttrs(
				"d", "x", "y", "cx", "cy", "r", "rx", "ry",
				"width", "height", "fill", "stroke", "stroke-width", "transform",
			).OnElements(el)
		}
		policy.AllowAttrs("transform", "fill").OnElements("g")
		// Only same-document fragment references; a remote service must not
		// be able to point a <use> at an external resource.
		policy.AllowAttrs("href", "xlink:href").Matching(fragmentRef).OnElements("use")

		svgPolicy = policy
	})
	return svgPolicy
}
