package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/itswijay/feedhub/internal/client/api"
	"github.com/itswijay/feedhub/internal/client/config"
	"github.com/itswijay/feedhub/internal/client/guard"
	"github.com/itswijay/feedhub/internal/client/services"
	"github.com/itswijay/feedhub/internal/client/session"
)

// App is the terminal client. It owns the API client, the session store, and
// one guard per access policy; command handlers consult the matching guard
// before doing anything.
type App struct {
	config *config.Config
	client api.Client
	store  *session.Store
	posts  services.PostService
	reader *bufio.Reader

	authGuard *guard.Guard
	anonGuard *guard.Guard
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewHTTPClient(c.APIBaseURL, api.WithTimeout(c.RequestTimeout))
	if err != nil {
		return nil, err
	}

	store := session.NewStore(apiClient, session.WithRevalidateInterval(c.RevalidateInterval))

	a := &App{
		config: c,
		client: apiClient,
		store:  store,
		posts:  services.NewPostService(apiClient, store),
		reader: bufio.NewReader(os.Stdin),
	}
	a.authGuard = guard.New(guard.RequireAuthenticated, a)
	a.anonGuard = guard.New(guard.RequireAnonymous, a)
	return a, nil
}

// Navigate satisfies guard.Navigator. A terminal has no router to drive, so
// a redirect renders as a hint about where to go next.
func (a *App) Navigate(target string) {
	switch target {
	case guard.LoginTarget:
		printlnFn("You need to log in first (try 'login' or 'signup').")
	case guard.HomeTarget:
		printlnFn("You are already logged in; see 'feed'.")
	}
}

func (a *App) isAuthenticated() bool {
	return a.store.Snapshot().IsAuthenticated()
}

// gate reports whether the command behind g may run right now. On a
// violation the guard has already issued its redirect hint.
func (a *App) gate(g *guard.Guard) bool {
	return g.Evaluate(a.store.Snapshot()) == guard.DecisionRender
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	defer a.store.Close()
	a.Root(ctx)
}
