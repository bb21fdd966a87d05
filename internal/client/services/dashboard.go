package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/stores"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the per-role summary shown after login. Sections a role does
// not use stay empty; sections that failed to load are named in Failed.
type Dashboard struct {
	User                 models.User
	UpcomingAppointments []models.Appointment
	EnrolledPrograms     []models.Program
	Programs             int
	PendingSurveys       []models.Survey
	UnreadNotifications  int
	Children             []models.Child
	UsersByRole          map[models.Role]int
	Failed               map[string]string
}

// DashboardService builds dashboards from the domain stores.
type DashboardService interface {
	Build(ctx context.Context, user models.User) (*Dashboard, error)
}

type dashboardService struct {
	stores *stores.Set
	now    func() time.Time
}

func NewDashboardService(set *stores.Set) DashboardService {
	return &dashboardService{stores: set, now: time.Now}
}

type section struct {
	name  string
	fetch func(ctx context.Context) error
}

// Build refreshes the stores a role needs in parallel, then reads the summary
// from their snapshots. A failing section does not fail the dashboard, except
// when the session has ended or ctx is done: then the remaining sections are
// cancelled and the error is returned.
func (s *dashboardService) Build(ctx context.Context, user models.User) (*Dashboard, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	failed := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	for _, sec := range s.sections(user.Role) {
		g.Go(func() error {
			err := sec.fetch(gctx)
			if err == nil {
				return nil
			}
			if errors.Is(err, client.ErrUnauthorized) || ctx.Err() != nil {
				return err
			}
			mu.Lock()
			failed[sec.name] = client.Message(err)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{User: user, Failed: failed}
	switch user.Role {
	case models.RoleStudent, models.RoleParent, models.RolePsychologist:
		d.UpcomingAppointments = s.stores.Appointments.Upcoming(s.now())
	}
	switch user.Role {
	case models.RoleStudent, models.RoleParent:
		d.EnrolledPrograms = s.stores.Programs.Snapshot().Enrolled
		d.PendingSurveys = s.stores.Surveys.Pending()
	case models.RoleManager:
		d.Programs = len(s.stores.Programs.Snapshot().Programs)
		d.UsersByRole = s.stores.Users.CountByRole()
	}
	if user.Role == models.RoleParent {
		d.Children = s.stores.Parent.Snapshot().Children
	}
	d.UnreadNotifications = s.stores.Notifications.Snapshot().UnreadCount
	return d, nil
}

func (s *dashboardService) sections(role models.Role) []section {
	st := s.stores
	notifications := section{"notifications", func(ctx context.Context) error {
		_, err := st.Notifications.FetchAll(ctx)
		return err
	}}
	appointments := section{"appointments", func(ctx context.Context) error {
		_, err := st.Appointments.FetchMine(ctx)
		return err
	}}
	enrolled := section{"programs", func(ctx context.Context) error {
		_, err := st.Programs.FetchEnrolled(ctx)
		return err
	}}
	surveys := section{"surveys", func(ctx context.Context) error {
		if _, err := st.Surveys.FetchAll(ctx); err != nil {
			return err
		}
		_, err := st.Surveys.FetchResults(ctx)
		return err
	}}

	switch role {
	case models.RoleStudent:
		return []section{appointments, enrolled, surveys, notifications}
	case models.RoleParent:
		children := section{"children", func(ctx context.Context) error {
			_, err := st.Parent.FetchChildren(ctx)
			return err
		}}
		return []section{children, appointments, enrolled, surveys, notifications}
	case models.RolePsychologist:
		return []section{appointments, notifications}
	case models.RoleManager:
		users := section{"users", func(ctx context.Context) error {
			_, err := st.Users.FetchAll(ctx)
			return err
		}}
		programs := section{"programs", func(ctx context.Context) error {
			_, err := st.Programs.FetchAll(ctx)
			return err
		}}
		return []section{users, programs, notifications}
	}
	return []section{notifications}
}
