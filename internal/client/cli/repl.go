package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Health(ctx context.Context) error
	List(ctx context.Context, kind string) error
	Show(ctx context.Context, kind string) error
	Add(ctx context.Context, kind string) error
	Update(ctx context.Context, kind string) error
	Delete(ctx context.Context, kind string) error
}

const helpText = "Available commands: register, login, logout, health, " +
	"list|show|add|update|delete <task|service>, exit"

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Handlers report their own errors, so the loop
// ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "tk %s > ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(w, "error:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withKind := func(fn func(context.Context, string) error) {
			if len(args) != 1 {
				fmt.Fprintf(w, "Usage: %s <task|service>\n", cmd)
				return
			}
			_ = fn(ctx, args[0])
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "health":
			_ = a.Health(ctx)

		case "l", "list":
			withKind(a.List)

		case "show":
			withKind(a.Show)

		case "add":
			withKind(a.Add)

		case "update":
			withKind(a.Update)

		case "delete":
			withKind(a.Delete)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
