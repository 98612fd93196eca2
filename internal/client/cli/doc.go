// Package cli provides the interactive FeedHub terminal client.
//
// It wires configuration, the API client, the session store, and an
// interactive REPL. Commands map to pages: feed, upload, delete, and profile
// require an authenticated session; login and signup require an anonymous
// one. Access is checked through route guards, so a command issued from the
// wrong session state prints a single redirect hint instead of running.
//
// The REPL is started via App.Root(ctx), which resolves the initial session
// state first and then blocks until the user exits.
package cli
