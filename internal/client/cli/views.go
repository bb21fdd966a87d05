package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindcare/internal/client/guard"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
)

type view func(a *App, ctx context.Context, s session.Session) error

// views maps every route of guard.Routes to its renderer.
var views = map[string]view{
	guard.PathHome:           (*App).viewHome,
	guard.PathLogin:          (*App).viewLogin,
	guard.PathRegister:       (*App).viewRegister,
	guard.PathUnauthorized:   (*App).viewUnauthorized,
	guard.PathDashboard:      (*App).viewDashboard,
	"/appointments":          (*App).viewAppointments,
	"/appointments/book":     (*App).viewBook,
	"/program":               (*App).viewPrograms,
	"/surveys":               (*App).viewSurveys,
	"/parent/children":       (*App).viewChildren,
	"/psychologist/schedule": (*App).viewSchedule,
	"/manager/users":         (*App).viewUsers,
	"/manager/programs":      (*App).viewManagePrograms,
	"/manager/surveys":       (*App).viewManageSurveys,
	guard.PathArticles:       (*App).viewArticles,
	"/notifications":         (*App).viewNotifications,
	"/profile":               (*App).viewProfile,
}

// Navigate opens path through the route guard. A denied path moves the user
// to the login or unauthorized page instead; the login page remembers the
// requested path so a successful login can return to it.
func (a *App) Navigate(ctx context.Context, path string) error {
	s := a.session.Snapshot()
	d := a.guard.Check(s, path)

	switch d.Outcome {
	case guard.NotFound:
		a.println(errorText("Page not found: " + d.Target))
		return nil
	case guard.RedirectLogin:
		a.mu.Lock()
		a.returnTo = d.From
		a.path = d.Target
		a.mu.Unlock()
		a.println(warnText("Please log in to open " + d.From))
		return a.viewLogin(ctx, s)
	case guard.RedirectUnauthorized:
		a.setPath(d.Target)
		a.println(warnText("You do not have access to " + d.From))
		return a.viewUnauthorized(ctx, s)
	}

	a.setPath(d.Target)
	a.println(titleText(d.Route.Title))
	if v, ok := views[d.Target]; ok {
		return v(a, ctx, s)
	}
	return nil
}

// allowed checks a command against the route it belongs to and explains a
// denial to the user.
func (a *App) allowed(path string) (session.Session, bool) {
	s := a.session.Snapshot()
	switch a.guard.Check(s, path).Outcome {
	case guard.Render:
		return s, true
	case guard.RedirectLogin:
		a.println(warnText("Please log in first."))
	default:
		a.println(warnText("You are not allowed to do this."))
	}
	return s, false
}

func (a *App) viewHome(_ context.Context, s session.Session) error {
	a.println("MindCare: mental-health support for students and families.")
	if s.IsAuthenticated {
		a.println("Open your dashboard with 'go " + guard.PathDashboard + "'.")
		return nil
	}
	a.println("Type 'login' to sign in, 'register' to create an account or 'go " + guard.PathArticles + "' to read articles.")
	return nil
}

func (a *App) viewLogin(context.Context, session.Session) error {
	a.println("Type 'login' to sign in or 'register' to create an account.")
	return nil
}

func (a *App) viewRegister(context.Context, session.Session) error {
	a.println("Type 'register' to create a student or parent account.")
	return nil
}

func (a *App) viewUnauthorized(context.Context, session.Session) error {
	a.println("This page is not available for your role. Type 'help' to see what is.")
	return nil
}

func (a *App) viewDashboard(ctx context.Context, s session.Session) error {
	d, err := a.dashboard.Build(ctx, *s.User)
	if err != nil {
		return a.fail(ctx, "dashboard", err)
	}
	a.println(renderDashboard(d))
	return nil
}

func (a *App) viewAppointments(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Appointments.FetchMine(ctx)
	if err != nil {
		return a.fail(ctx, "appointments", err)
	}
	a.println(renderAppointments(list))
	a.println("Use 'book' for a new appointment, 'cancel <id>' to cancel one.")
	return nil
}

func (a *App) viewBook(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Appointments.FetchPsychologists(ctx)
	if err != nil {
		return a.fail(ctx, "psychologists", err)
	}
	a.println(renderPsychologists(list))
	a.println("Type 'book' to pick a psychologist and a time.")
	return nil
}

func (a *App) viewPrograms(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Programs.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "programs", err)
	}
	a.println(renderPrograms(list, a.stores.Programs.Snapshot().Pending))
	a.println("Use 'enroll <id>' or 'unenroll <id>'.")
	return nil
}

func (a *App) viewSurveys(ctx context.Context, _ session.Session) error {
	if _, err := a.stores.Surveys.FetchAll(ctx); err != nil {
		return a.fail(ctx, "surveys", err)
	}
	results, err := a.stores.Surveys.FetchResults(ctx)
	if err != nil {
		return a.fail(ctx, "survey results", err)
	}
	a.println("To take:")
	a.println(renderSurveys(a.stores.Surveys.Pending()))
	a.println("Completed:")
	a.println(renderResults(results))
	a.println("Use 'take <id>' to answer a survey.")
	return nil
}

func (a *App) viewChildren(ctx context.Context, _ session.Session) error {
	children, err := a.stores.Parent.FetchChildren(ctx)
	if err != nil {
		return a.fail(ctx, "children", err)
	}
	a.println(renderChildren(children))
	for _, c := range children {
		list, err := a.stores.Parent.FetchChildAppointments(ctx, c.StudentID)
		if err != nil {
			return a.fail(ctx, "child appointments", err)
		}
		results, err := a.stores.Parent.FetchChildSurveyResults(ctx, c.StudentID)
		if err != nil {
			return a.fail(ctx, "child survey results", err)
		}
		a.println(titleText(c.FullName))
		a.println(renderAppointments(list))
		a.println(renderResults(results))
	}
	return nil
}

func (a *App) viewSchedule(ctx context.Context, _ session.Session) error {
	if _, err := a.stores.Appointments.FetchMine(ctx); err != nil {
		return a.fail(ctx, "schedule", err)
	}
	a.println(renderAppointments(a.stores.Appointments.Upcoming(a.now())))
	a.println("Use 'status <id> <confirmed|completed|cancelled> [notes]' to update a session.")
	return nil
}

func (a *App) viewUsers(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Users.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "users", err)
	}
	a.println(renderUsers(list))
	a.println(fmt.Sprintf("%d users", len(list)))
	return nil
}

func (a *App) viewManagePrograms(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Programs.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "programs", err)
	}
	a.println(renderPrograms(list, nil))
	return nil
}

func (a *App) viewManageSurveys(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Surveys.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "surveys", err)
	}
	a.println(renderSurveys(list))
	return nil
}

func (a *App) viewArticles(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Articles.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "articles", err)
	}
	a.println(renderArticles(list))
	a.println("Use 'article <id>' to read one.")
	return nil
}

func (a *App) viewNotifications(ctx context.Context, _ session.Session) error {
	list, err := a.stores.Notifications.FetchAll(ctx)
	if err != nil {
		return a.fail(ctx, "notifications", err)
	}
	a.println(fmt.Sprintf("%d unread", a.stores.Notifications.Snapshot().UnreadCount))
	a.println(renderNotifications(list))
	a.println("Use 'read <id>' or 'readall'.")
	return nil
}

func (a *App) viewProfile(_ context.Context, s session.Session) error {
	a.println(renderProfile(*s.User))
	return nil
}
