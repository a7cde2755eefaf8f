// Package router owns which view is currently active.
package router

import "github.com/verte-zerg/agroscan/internal/model"

// Router tracks the active page. Exactly one page is active at a time.
type Router struct {
	active model.Page
}

// New builds a router starting from the given fragment, falling back to home
// when the fragment is empty or unknown.
func New(fragment string) *Router {
	r := &Router{active: model.PageHome}
	if page, ok := model.ParsePage(fragment); ok {
		r.active = page
	}
	return r
}

// Active returns the currently active page.
func (r *Router) Active() model.Page {
	return r.active
}

// Activate switches to the named page. Unknown identifiers are ignored and the
// previous page stays active. It reports whether the activated page wants a
// dashboard refresh.
func (r *Router) Activate(name string) (refreshDashboard bool) {
	page, ok := model.ParsePage(name)
	if !ok {
		return false
	}
	r.active = page
	return page == model.PageDashboard
}

// ActivatePage switches directly to a known page.
func (r *Router) ActivatePage(page model.Page) (refreshDashboard bool) {
	return r.Activate(page.String())
}

// IndicatorIndex returns the sidebar dot index for the active page.
func (r *Router) IndicatorIndex() int {
	return int(r.active)
}

// Fragment returns the location fragment reflecting the active page.
func (r *Router) Fragment() string {
	return "#" + r.active.String()
}
