// Package guard decides whether a view may be rendered for the current
// session. Checks are pure and synchronous: the same session and path always
// give the same decision.
package guard

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
)

const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathUnauthorized = "/unauthorized"
	PathArticles     = "/articles"
	PathDashboard    = "/dashboard"
)

// Route is one entry of the route table. Roles is nil for public routes.
type Route struct {
	Path   string
	Title  string
	Roles  []models.Role
	Public bool
	// Hidden routes are reachable but not listed in the menu.
	Hidden bool
}

func (r Route) Allows(role models.Role) bool {
	return r.Public || slices.Contains(r.Roles, role)
}

// Routes is the route table of the application, in menu order.
var Routes = []Route{
	{Path: PathHome, Title: "Home", Public: true, Hidden: true},
	{Path: PathLogin, Title: "Log in", Public: true, Hidden: true},
	{Path: PathRegister, Title: "Register", Public: true, Hidden: true},
	{Path: PathUnauthorized, Title: "Unauthorized", Public: true, Hidden: true},
	{Path: PathDashboard, Title: "Dashboard", Roles: models.AllRoles},
	{Path: "/appointments", Title: "Appointments", Roles: []models.Role{models.RoleStudent, models.RoleParent, models.RolePsychologist}},
	{Path: "/appointments/book", Title: "Book an appointment", Roles: []models.Role{models.RoleStudent, models.RoleParent}},
	{Path: "/program", Title: "Programs", Roles: []models.Role{models.RoleStudent, models.RoleParent, models.RoleManager}},
	{Path: "/surveys", Title: "Surveys", Roles: []models.Role{models.RoleStudent, models.RoleParent}},
	{Path: "/parent/children", Title: "My children", Roles: []models.Role{models.RoleParent}},
	{Path: "/psychologist/schedule", Title: "Schedule", Roles: []models.Role{models.RolePsychologist}},
	{Path: "/manager/users", Title: "Users", Roles: []models.Role{models.RoleManager}},
	{Path: "/manager/programs", Title: "Manage programs", Roles: []models.Role{models.RoleManager}},
	{Path: "/manager/surveys", Title: "Manage surveys", Roles: []models.Role{models.RoleManager}},
	{Path: PathArticles, Title: "Articles", Public: true},
	{Path: "/notifications", Title: "Notifications", Roles: models.AllRoles},
	{Path: "/profile", Title: "Profile", Roles: models.AllRoles},
}

type Outcome int

const (
	Render Outcome = iota
	RedirectLogin
	RedirectUnauthorized
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "not-found"
	}
}

// Decision is the result of Check. Target is where to go instead of Path;
// From is the originally requested path, kept so login can return to it.
type Decision struct {
	Outcome Outcome
	Route   Route
	Target  string
	From    string
}

// Guard checks paths against a route table.
type Guard struct {
	routes map[string]Route
	order  []Route
}

func New(routes []Route) *Guard {
	g := &Guard{routes: make(map[string]Route, len(routes)), order: routes}
	for _, r := range routes {
		g.routes[r.Path] = r
	}
	return g
}

// Default returns a guard over Routes.
func Default() *Guard {
	return New(Routes)
}

// Normalize strips the query and trailing slashes from path.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Check applies two gates in order: not authenticated redirects to the login
// page, a role outside the route's list redirects to the unauthorized page.
// Public routes skip both.
func (g *Guard) Check(s session.Session, path string) Decision {
	path = Normalize(path)
	route, ok := g.routes[path]
	if !ok {
		return Decision{Outcome: NotFound, Target: path}
	}
	if route.Public {
		return Decision{Outcome: Render, Route: route, Target: path}
	}
	if !s.IsAuthenticated {
		return Decision{Outcome: RedirectLogin, Route: route, Target: PathLogin, From: path}
	}
	if !route.Allows(s.Role()) {
		return Decision{Outcome: RedirectUnauthorized, Route: route, Target: PathUnauthorized, From: path}
	}
	return Decision{Outcome: Render, Route: route, Target: path}
}

// Menu lists the visible routes a role may open, in table order.
func (g *Guard) Menu(role models.Role) []Route {
	var out []Route
	for _, r := range g.order {
		if !r.Hidden && r.Allows(role) {
			out = append(out, r)
		}
	}
	return out
}

// Home is the landing page after login.
func Home(role models.Role) string {
	if role == "" {
		return PathHome
	}
	return PathDashboard
}
