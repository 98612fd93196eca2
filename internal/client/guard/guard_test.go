package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/client/session"
)

// fakeNav records redirects.
type fakeNav struct {
	targets []string
}

func (f *fakeNav) Navigate(target string) { f.targets = append(f.targets, target) }

func unknown() session.Snapshot { return session.Snapshot{Status: session.StatusUnknown} }

func anonymous() session.Snapshot { return session.Snapshot{Status: session.StatusAnonymous} }

func authenticated() session.Snapshot {
	return session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &models.User{ID: "u1", Email: "a@b.com"},
	}
}

func TestEvaluate_PlaceholderWhileUnknown(t *testing.T) {
	for _, policy := range []Policy{RequireAuthenticated, RequireAnonymous} {
		nav := &fakeNav{}
		g := New(policy, nav)

		// However many renders happen before the first session check
		// resolves, there is never a redirect.
		for i := 0; i < 5; i++ {
			require.Equal(t, DecisionPlaceholder, g.Evaluate(unknown()))
		}
		require.Empty(t, nav.targets)
	}
}

func TestEvaluate_RequireAuthenticated(t *testing.T) {
	nav := &fakeNav{}
	g := New(RequireAuthenticated, nav)

	require.Equal(t, DecisionRender, g.Evaluate(authenticated()))
	require.Empty(t, nav.targets)

	require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	require.Equal(t, []string{LoginTarget}, nav.targets)
}

func TestEvaluate_RequireAnonymous(t *testing.T) {
	nav := &fakeNav{}
	g := New(RequireAnonymous, nav)

	require.Equal(t, DecisionRender, g.Evaluate(anonymous()))

	require.Equal(t, DecisionRedirect, g.Evaluate(authenticated()))
	require.Equal(t, []string{HomeTarget}, nav.targets)
}

func TestEvaluate_RedirectIsEdgeTriggered(t *testing.T) {
	nav := &fakeNav{}
	g := New(RequireAuthenticated, nav)

	// Re-renders while navigating away must not re-trigger navigation.
	for i := 0; i < 5; i++ {
		require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	}
	require.Len(t, nav.targets, 1)
}

func TestEvaluate_RedirectRearmsAfterSatisfied(t *testing.T) {
	nav := &fakeNav{}
	g := New(RequireAuthenticated, nav)

	require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	require.Equal(t, DecisionRender, g.Evaluate(authenticated()))

	// A second violation episode gets its own single redirect.
	require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	require.Equal(t, []string{LoginTarget, LoginTarget}, nav.targets)
}

func TestEvaluate_InitializeResolves401(t *testing.T) {
	nav := &fakeNav{}
	g := New(RequireAuthenticated, nav)

	require.Equal(t, DecisionPlaceholder, g.Evaluate(unknown()))
	require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	require.Equal(t, DecisionRedirect, g.Evaluate(anonymous()))
	require.Equal(t, []string{LoginTarget}, nav.targets)
}

func TestTarget(t *testing.T) {
	require.Equal(t, LoginTarget, New(RequireAuthenticated, &fakeNav{}).Target())
	require.Equal(t, HomeTarget, New(RequireAnonymous, &fakeNav{}).Target())
}
