package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for REPL output. In tests, replace
// them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Help(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Navigate(ctx context.Context, path string) error
	Book(ctx context.Context) error
	CancelAppointment(ctx context.Context, id string) error
	SetAppointmentStatus(ctx context.Context, id, status, notes string) error
	Enroll(ctx context.Context, id string) error
	Unenroll(ctx context.Context, id string) error
	TakeSurvey(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	ShowArticle(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the MindCare CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands share reader with their own prompts.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands
//
//	help                      show commands and pages
//	register | login | logout account
//	whoami                    show the current user
//	go <path>                 open a page through the route guard
//	book                      book an appointment
//	cancel <id>               cancel an appointment
//	status <id> <s> [notes]   update an appointment (psychologists)
//	enroll <id>               enroll in a program
//	unenroll <id>             cancel an enrollment
//	take <id>                 answer a survey
//	read <id> | readall       mark notifications read
//	article <id>              read an article
//	exit | quit               leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("mindcare %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		if !dispatch(ctx, a, parts[0], parts[1:]) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command. It returns false when the REPL should stop.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	withID := func(usage string, fn func(context.Context, string) error) {
		if len(args) == 0 {
			printlnFn("Usage: " + usage)
			return
		}
		_ = fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		_ = a.Help(ctx)

	case "register":
		_ = a.Register(ctx)

	case "login":
		_ = a.Login(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "whoami":
		_ = a.WhoAmI(ctx)

	case "go":
		withID("go <path>", a.Navigate)

	case "book":
		_ = a.Book(ctx)

	case "cancel":
		withID("cancel <id>", a.CancelAppointment)

	case "status":
		if len(args) < 2 {
			printlnFn("Usage: status <id> <confirmed|completed|cancelled> [notes]")
			return true
		}
		_ = a.SetAppointmentStatus(ctx, args[0], args[1], strings.Join(args[2:], " "))

	case "enroll":
		withID("enroll <id>", a.Enroll)

	case "unenroll":
		withID("unenroll <id>", a.Unenroll)

	case "take":
		withID("take <survey id>", a.TakeSurvey)

	case "read":
		withID("read <id>", a.MarkRead)

	case "readall":
		_ = a.MarkAllRead(ctx)

	case "article":
		withID("article <id>", a.ShowArticle)

	case "exit", "quit":
		printlnFn("Bye!")
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}
