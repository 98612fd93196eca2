// Package guard gates page rendering on session state. A Guard evaluates
// the declared access policy against session snapshots and asks the
// navigation layer for a redirect when the policy is violated: at most once
// per violation, however often the page re-renders.
package guard

import "github.com/itswijay/feedhub/internal/client/session"

// Policy declares what a page requires from the session.
type Policy int

const (
	// RequireAuthenticated protects pages that need a valid session.
	// Violations redirect to the login page.
	RequireAuthenticated Policy = iota

	// RequireAnonymous protects pages meant for logged-out users only
	// (login, signup). Violations redirect to the feed page.
	RequireAnonymous
)

// Decision is the outcome of evaluating a snapshot against the policy.
type Decision int

const (
	// DecisionPlaceholder: session validity is still unresolved; render a
	// neutral loading indicator and take no redirect action.
	DecisionPlaceholder Decision = iota

	// DecisionRender: the policy is satisfied; render the page content.
	DecisionRender

	// DecisionRedirect: the policy is violated; a redirect has been (or
	// already was) issued and nothing should be rendered.
	DecisionRedirect
)

// Navigator performs a navigation redirect. Implemented by the surrounding
// application shell; the guard is its only caller for policy redirects.
type Navigator interface {
	Navigate(target string)
}

// Default redirect targets.
const (
	LoginTarget = "/login"
	HomeTarget  = "/"
)

// Guard evaluates one page's access policy. It is edge-triggered: entering a
// violating state issues exactly one Navigate call, and the trigger re-arms
// only after the policy is satisfied again. Not safe for concurrent use; a
// guard belongs to a single page of a single UI tree.
type Guard struct {
	policy     Policy
	nav        Navigator
	target     string
	redirected bool
}

// New builds a guard for the given policy, redirecting through nav.
func New(policy Policy, nav Navigator) *Guard {
	target := LoginTarget
	if policy == RequireAnonymous {
		target = HomeTarget
	}
	return &Guard{policy: policy, nav: nav, target: target}
}

// Evaluate maps the snapshot to a render decision, issuing a redirect on the
// first observation of a violating resolved status. While the status is
// unknown no decision is made: redirects must never race the first session
// check.
func (g *Guard) Evaluate(snap session.Snapshot) Decision {
	if snap.IsLoading() {
		return DecisionPlaceholder
	}

	if g.satisfied(snap) {
		g.redirected = false
		return DecisionRender
	}

	if !g.redirected {
		g.redirected = true
		g.nav.Navigate(g.target)
	}
	return DecisionRedirect
}

// Target returns where this guard redirects on violation.
func (g *Guard) Target() string { return g.target }

func (g *Guard) satisfied(snap session.Snapshot) bool {
	if g.policy == RequireAuthenticated {
		return snap.Status == session.StatusAuthenticated
	}
	return snap.Status != session.StatusAuthenticated
}
