package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
	Delete(ctx context.Context, postID string) error
	Profile(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the FeedHub terminal client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Anonymous:
//	  - help           show available commands
//	  - login          authenticate
//	  - signup         create an account and log in
//	  - exit | quit    leave the program
//
//	Authenticated:
//	  - help           show available commands
//	  - feed           show the feed (filters: type=image|video, order=oldest, free text)
//	  - upload         upload a media file
//	  - delete <id>    delete one of your posts
//	  - profile        show your account
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are ignored here; handlers print their
// own diagnostics. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("feedhub %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: (f)eed, upload, delete <id>, profile, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "f", "feed":
			_ = a.Feed(ctx, args)

		case "upload":
			_ = a.Upload(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <post-id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "profile", "me":
			_ = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
