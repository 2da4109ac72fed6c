package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Accounts(ctx context.Context) error
	Forget(ctx context.Context, email string) error
	Reset(ctx context.Context) error
	Home(ctx context.Context) error
	Contract(ctx context.Context) error
	Billing(ctx context.Context, month string) error
	Usage(ctx context.Context) error
	Options(ctx context.Context) error
	Subscribe(ctx context.Context, optionID string) error
	Unsubscribe(ctx context.Context, optionID string) error
	Notifications(ctx context.Context) error
	Read(ctx context.Context, notificationID string) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Prefs(ctx context.Context) error
	Plan(ctx context.Context, planID string) error
}

const (
	helpSignedOut = "Available commands: login, accounts, forget <email>, reset, help, exit"
	helpSignedIn  = "Available commands: home, contract, billing [YYYY-MM], usage, options, " +
		"subscribe <id>, unsubscribe <id>, notifications, read <id>, profile, passwd, prefs, " +
		"plan <planId>, whoami, accounts, forget <email>, reset, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the mypage CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need an argument print their
// usage when it is missing. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// A failing command never ends the loop: its error is printed through
// describe, which only ever yields a display-safe message.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mypage %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("使い方:", usage)
				return "", false
			}
			return args[0], true
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.Whoami(ctx)
		case "accounts":
			cmdErr = a.Accounts(ctx)
		case "forget":
			if email, ok := arg("forget <email>"); ok {
				cmdErr = a.Forget(ctx, email)
			}
		case "reset":
			cmdErr = a.Reset(ctx)

		case "home":
			cmdErr = a.Home(ctx)
		case "contract":
			cmdErr = a.Contract(ctx)
		case "billing":
			month := ""
			if len(args) > 0 {
				month = args[0]
			}
			cmdErr = a.Billing(ctx, month)
		case "usage":
			cmdErr = a.Usage(ctx)
		case "options":
			cmdErr = a.Options(ctx)
		case "subscribe":
			if id, ok := arg("subscribe <id>"); ok {
				cmdErr = a.Subscribe(ctx, id)
			}
		case "unsubscribe":
			if id, ok := arg("unsubscribe <id>"); ok {
				cmdErr = a.Unsubscribe(ctx, id)
			}
		case "notifications":
			cmdErr = a.Notifications(ctx)
		case "read":
			if id, ok := arg("read <id>"); ok {
				cmdErr = a.Read(ctx, id)
			}
		case "profile":
			cmdErr = a.Profile(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "prefs":
			cmdErr = a.Prefs(ctx)
		case "plan":
			if id, ok := arg("plan <planId>"); ok {
				cmdErr = a.Plan(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describe(cmdErr))
		}
	}
}

// describe turns any command error into a message fit for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		return "ログインしていません。'login' でログインしてください。"
	case errors.Is(err, common.ErrorValidation):
		return strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
	case errors.Is(err, client.ErrUnauthorized):
		return client.AsClassified(err).Message + "\n再度ログインしてください。"
	default:
		return client.AsClassified(err).Message
	}
}
