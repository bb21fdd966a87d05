package stores

import "github.com/dmitrijs2005/mindcare/internal/client/client"

// Set holds one instance of every store, wired to the same API client.
type Set struct {
	Appointments  *Appointments
	Programs      *Programs
	Surveys       *Surveys
	Notifications *Notifications
	Users         *Users
	Parent        *Parent
	Articles      *Articles
}

func NewSet(c *client.Client) *Set {
	return &Set{
		Appointments:  NewAppointments(c.Appointments, c.Psychologists),
		Programs:      NewPrograms(c.Programs),
		Surveys:       NewSurveys(c.Surveys),
		Notifications: NewNotifications(c.Notifications),
		Users:         NewUsers(c.Users),
		Parent:        NewParent(c.Parents),
		Articles:      NewArticles(c.Articles),
	}
}

// Reset drops every store's state, used on logout.
func (s *Set) Reset() {
	s.Programs.reset()
	resetStore(s.Appointments.store, AppointmentsState{})
	resetStore(s.Surveys.store, SurveysState{})
	resetStore(s.Notifications.store, NotificationsState{})
	resetStore(s.Users.store, UsersState{})
	resetStore(s.Parent.store, ParentState{})
	resetStore(s.Articles.store, ArticlesState{})
}

func resetStore[S any](s *store[S], zero S) {
	s.mu.Lock()
	s.state = zero
	s.err = ""
	s.mu.Unlock()
	s.notify()
}
