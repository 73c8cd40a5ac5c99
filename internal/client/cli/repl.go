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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Feed(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Photo(ctx context.Context, id, path string) error
}

const (
	helpGuest  = "Available commands: feed [filters], go <path>, register, login, whoami, exit"
	helpMember = "Available commands: feed [filters], (l)ist, show <id>, new, edit <id>, delete <id>, photo <id> <file>, go <path>, whoami, logout, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Handlers report their own failures to the user, so their errors are
// ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bb %s > ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "feed":
			_ = a.Feed(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "new":
			_ = a.New(ctx)

		case "show", "edit", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0])
			case "edit":
				_ = a.Edit(ctx, args[0])
			default:
				_ = a.Delete(ctx, args[0])
			}

		case "photo":
			if len(args) < 2 {
				printlnFn("Usage: photo <id> <file>")
				continue
			}
			_ = a.Photo(ctx, args[0], strings.Join(args[1:], " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
