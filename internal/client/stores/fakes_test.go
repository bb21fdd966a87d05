package stores

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type fakeAppointments struct {
	mine         func() ([]models.Appointment, error)
	list         func(models.AppointmentFilter) ([]models.Appointment, error)
	get          func(string) (*models.Appointment, error)
	book         func(models.BookAppointmentRequest) (*models.Appointment, error)
	cancel       func(string) (*models.Appointment, error)
	updateStatus func(string, models.UpdateAppointmentStatusRequest) (*models.Appointment, error)
}

func (f *fakeAppointments) List(_ context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return f.list(filter)
}
func (f *fakeAppointments) Mine(context.Context) ([]models.Appointment, error) { return f.mine() }
func (f *fakeAppointments) Get(_ context.Context, id string) (*models.Appointment, error) {
	return f.get(id)
}
func (f *fakeAppointments) Book(_ context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	return f.book(req)
}
func (f *fakeAppointments) Cancel(_ context.Context, id string) (*models.Appointment, error) {
	return f.cancel(id)
}
func (f *fakeAppointments) UpdateStatus(_ context.Context, id string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	return f.updateStatus(id, req)
}

type fakePsychologists struct {
	list  func() ([]models.Psychologist, error)
	slots func(string, time.Time) ([]models.TimeSlot, error)
}

func (f *fakePsychologists) List(context.Context) ([]models.Psychologist, error) { return f.list() }
func (f *fakePsychologists) Slots(_ context.Context, id string, day time.Time) ([]models.TimeSlot, error) {
	return f.slots(id, day)
}

type fakePrograms struct {
	list     func() ([]models.Program, error)
	get      func(string) (*models.Program, error)
	enrolled func() ([]models.Program, error)
	enroll   func(string) error
	cancel   func(string) error
	create   func(models.ProgramRequest) (*models.Program, error)
	update   func(string, models.ProgramRequest) (*models.Program, error)
}

func (f *fakePrograms) List(context.Context) ([]models.Program, error) { return f.list() }
func (f *fakePrograms) Get(_ context.Context, id string) (*models.Program, error) {
	return f.get(id)
}
func (f *fakePrograms) Enrolled(context.Context) ([]models.Program, error) {
	if f.enrolled == nil {
		return nil, nil
	}
	return f.enrolled()
}
func (f *fakePrograms) Enroll(_ context.Context, id string) error           { return f.enroll(id) }
func (f *fakePrograms) CancelEnrollment(_ context.Context, id string) error { return f.cancel(id) }
func (f *fakePrograms) Create(_ context.Context, req models.ProgramRequest) (*models.Program, error) {
	return f.create(req)
}
func (f *fakePrograms) Update(_ context.Context, id string, req models.ProgramRequest) (*models.Program, error) {
	return f.update(id, req)
}

type fakeSurveys struct {
	list    func() ([]models.Survey, error)
	get     func(string) (*models.Survey, error)
	submit  func(string, models.SubmitSurveyRequest) (*models.SurveyResult, error)
	results func() ([]models.SurveyResult, error)
	create  func(models.SurveyRequest) (*models.Survey, error)
}

func (f *fakeSurveys) List(context.Context) ([]models.Survey, error) { return f.list() }
func (f *fakeSurveys) Get(_ context.Context, id string) (*models.Survey, error) {
	return f.get(id)
}
func (f *fakeSurveys) Submit(_ context.Context, id string, req models.SubmitSurveyRequest) (*models.SurveyResult, error) {
	return f.submit(id, req)
}
func (f *fakeSurveys) Results(context.Context) ([]models.SurveyResult, error) { return f.results() }
func (f *fakeSurveys) Create(_ context.Context, req models.SurveyRequest) (*models.Survey, error) {
	return f.create(req)
}

type fakeNotifications struct {
	list        func() ([]models.Notification, error)
	markRead    func(string) error
	markAllRead func() error
	del         func(string) error
}

func (f *fakeNotifications) List(context.Context) ([]models.Notification, error) { return f.list() }
func (f *fakeNotifications) MarkRead(_ context.Context, id string) error         { return f.markRead(id) }
func (f *fakeNotifications) MarkAllRead(context.Context) error                   { return f.markAllRead() }
func (f *fakeNotifications) Delete(_ context.Context, id string) error           { return f.del(id) }

type fakeUsers struct {
	list   func() ([]models.User, error)
	get    func(string) (*models.User, error)
	update func(string, models.UpdateProfileRequest) (*models.User, error)
	del    func(string) error
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) { return f.list() }
func (f *fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	return f.get(id)
}
func (f *fakeUsers) UpdateProfile(_ context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	return f.update(id, req)
}
func (f *fakeUsers) Delete(_ context.Context, id string) error { return f.del(id) }

type fakeParents struct {
	children     func() ([]models.Child, error)
	appointments func(string) ([]models.Appointment, error)
	results      func(string) ([]models.SurveyResult, error)
}

func (f *fakeParents) Children(context.Context) ([]models.Child, error) { return f.children() }
func (f *fakeParents) ChildAppointments(_ context.Context, id string) ([]models.Appointment, error) {
	return f.appointments(id)
}
func (f *fakeParents) ChildSurveyResults(_ context.Context, id string) ([]models.SurveyResult, error) {
	return f.results(id)
}

type fakeArticles struct {
	list   func() ([]models.Article, error)
	get    func(string) (*models.Article, error)
	create func(models.ArticleRequest) (*models.Article, error)
}

func (f *fakeArticles) List(context.Context) ([]models.Article, error) { return f.list() }
func (f *fakeArticles) Get(_ context.Context, id string) (*models.Article, error) {
	return f.get(id)
}
func (f *fakeArticles) Create(_ context.Context, req models.ArticleRequest) (*models.Article, error) {
	return f.create(req)
}
