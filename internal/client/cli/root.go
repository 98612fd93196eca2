package cli

import (
	"bufio"
	"context"
	"os"
)

func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	switch {
	case snap.IsLoading():
		return "(...)"
	case snap.IsAuthenticated():
		return "(" + snap.User.Email + ")"
	default:
		return "(anonymous)"
	}
}

// Root resolves the initial session state and runs the REPL until the user
// exits. An expired ctx during initialization is not fatal: the state keeps
// resolving in the background and the prompt shows "..." until it does.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to FeedHub (type 'help' for commands)")

	if _, err := a.store.Initialize(ctx); err != nil {
		printlnFn("Still checking your session...")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
