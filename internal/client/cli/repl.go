package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ask(ctx context.Context) error
	Questions(ctx context.Context, args []string) error
	Votes(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner until EOF, "exit" or "quit".
// Command errors are not fatal; handlers print their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sq %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, ask, questions [page], votes [page] [upvoted|downvoted] [-u user-id], logout, exit")
			} else {
				printlnFn("Available commands: register, login, questions [page], votes -u user-id [page] [upvoted|downvoted], exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "ask":
			_ = a.Ask(ctx)

		case "questions":
			_ = a.Questions(ctx, args)

		case "votes":
			_ = a.Votes(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
