package client

// Client groups the resource clients sharing one BaseClient.
type Client struct {
	*BaseClient

	Auth          Auth
	Appointments  Appointments
	Psychologists Psychologists
	Programs      Programs
	Surveys       Surveys
	Notifications Notifications
	Users         Users
	Parents       Parents
	Articles      Articles
}

func New(base *BaseClient) *Client {
	return &Client{
		BaseClient:    base,
		Auth:          NewAuthClient(base),
		Appointments:  NewAppointmentsClient(base),
		Psychologists: NewPsychologistsClient(base),
		Programs:      NewProgramsClient(base),
		Surveys:       NewSurveysClient(base),
		Notifications: NewNotificationsClient(base),
		Users:         NewUsersClient(base),
		Parents:       NewParentsClient(base),
		Articles:      NewArticlesClient(base),
	}
}
