package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindcare/internal/client/guard"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/common"
)

// getSimpleText, getPassword and getChoice are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getChoice     = GetChoice
)

// Register prompts for the account details and creates a student or parent
// account. The user logs in afterwards. The password byte slice is wiped
// before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	roleText, err := getSimpleText(a.reader, "Account type (student or parent)", a.out)
	if err != nil {
		return err
	}
	role, _ := models.ParseRole(roleText)

	req := models.RegisterRequest{
		Email:    email,
		Password: string(password),
		FullName: name,
		Role:     role,
	}
	if err := a.auth.Register(ctx, req); err != nil {
		return a.fail(ctx, "register", err)
	}

	a.println(okText("Account created. Type 'login' to sign in."))
	a.setPath(guard.PathLogin)
	return nil
}

// Login prompts for credentials and authenticates. On success the stores are
// reset and the user lands on the page that sent them to login, or on their
// home page. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	a.stores.Reset()
	a.println(okText(fmt.Sprintf("Logged in as %s (%s)", displayName(*user), user.Role)))

	a.mu.Lock()
	target := a.returnTo
	a.returnTo = ""
	a.mu.Unlock()

	s := a.session.Snapshot()
	if target == "" || a.guard.Check(s, target).Outcome != guard.Render {
		target = guard.Home(user.Role)
	}
	return a.Navigate(ctx, target)
}

// Logout ends the session locally and drops all cached data.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	a.stores.Reset()

	a.mu.Lock()
	a.returnTo = ""
	a.path = guard.PathHome
	a.mu.Unlock()

	a.println("Logged out.")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated || s.User == nil {
		a.println("Not logged in.")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s>, %s", displayName(*s.User), s.User.Email, s.User.Role))
	return nil
}

// Help lists the commands and, for a logged-in user, the pages of their menu.
func (a *App) Help(context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated {
		a.println("Available commands: register, login, go <path>, article <id>, whoami, exit")
		a.println("Pages: " + guard.PathArticles)
		return nil
	}

	a.println("Available commands: go <path>, book, cancel <id>, status <id> <status> [notes], " +
		"enroll <id>, unenroll <id>, take <id>, read <id>, readall, article <id>, whoami, logout, exit")
	a.println("Pages:")
	for _, r := range a.guard.Menu(s.Role()) {
		a.println(fmt.Sprintf("  %-24s %s", r.Path, r.Title))
	}
	return nil
}
