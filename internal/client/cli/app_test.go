package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/config"
	"github.com/dmitrijs2005/mindcare/internal/client/guard"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/repositories/storage"
	"github.com/dmitrijs2005/mindcare/internal/logging"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var (
	student      = models.User{UserID: "u1", Role: models.RoleStudent, Email: "s@example.com", FullName: "Sam"}
	parent       = models.User{UserID: "u2", Role: models.RoleParent, Email: "p@example.com", FullName: "Pat"}
	psychologist = models.User{UserID: "u3", Role: models.RolePsychologist, Email: "d@example.com", FullName: "Dr. Lee"}
	manager      = models.User{UserID: "u4", Role: models.RoleManager, Email: "m@example.com", FullName: "Max"}
)

type testApp struct {
	*App
	buf *bytes.Buffer
}

func (a *testApp) output() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buf.String()
}

func newTestApp(t *testing.T, handler http.Handler, input string) *testApp {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.RequestTimeout = 5 * time.Second

	var buf bytes.Buffer
	a := newApp(cfg, storage.NewSQLiteRepository(db), logging.Nop(), strings.NewReader(input), &buf)
	t.Cleanup(func() { _ = a.Close() })
	return &testApp{App: a, buf: &buf}
}

func (a *testApp) loginAs(t *testing.T, u models.User) {
	t.Helper()
	require.NoError(t, a.session.Login(context.Background(), u, "a1", "r1"))
}

func reply(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func TestViews_CoverEveryRoute(t *testing.T) {
	for _, r := range guard.Routes {
		_, ok := views[r.Path]
		assert.True(t, ok, "no view for %s", r.Path)
	}
}

func TestNavigate_RequiresLogin(t *testing.T) {
	a := newTestApp(t, http.NewServeMux(), "")

	require.NoError(t, a.Navigate(context.Background(), "/dashboard"))

	assert.Equal(t, guard.PathLogin, a.currentPath())
	assert.Equal(t, "/dashboard", a.returnTo)
	assert.Contains(t, a.output(), "Please log in to open /dashboard")
}

func TestNavigate_WrongRole(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		reply([]models.User{})(w, r)
	})
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)

	require.NoError(t, a.Navigate(context.Background(), "/manager/users"))

	assert.Equal(t, guard.PathUnauthorized, a.currentPath())
	assert.Contains(t, a.output(), "You do not have access to /manager/users")
	assert.Zero(t, calls.Load())
}

func TestNavigate_NotFound(t *testing.T) {
	a := newTestApp(t, http.NewServeMux(), "")

	require.NoError(t, a.Navigate(context.Background(), "/nowhere"))

	assert.Equal(t, guard.PathHome, a.currentPath())
	assert.Contains(t, a.output(), "Page not found: /nowhere")
}

func TestNavigate_PublicArticles(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /articles", reply([]models.Article{{ArticleID: "ar1", Title: "Sleep and stress"}}))
	a := newTestApp(t, mux, "")

	require.NoError(t, a.Navigate(context.Background(), "/articles/"))

	assert.Equal(t, guard.PathArticles, a.currentPath())
	assert.Contains(t, a.output(), "Sleep and stress")
}

func TestNavigate_ManagerUsers(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /users", reply([]models.User{student, parent}))
	a := newTestApp(t, mux, "")
	a.loginAs(t, manager)

	require.NoError(t, a.Navigate(context.Background(), "/manager/users"))

	out := a.output()
	assert.Contains(t, out, "s@example.com")
	assert.Contains(t, out, "2 users")
}

func TestNavigate_ViewErrorIsReported(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /notifications", status(http.StatusInternalServerError))
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)

	err := a.Navigate(context.Background(), "/notifications")

	require.Error(t, err)
	assert.Contains(t, a.output(), "server error, please try again later")
}

func TestLogin_ReturnsToRequestedPage(t *testing.T) {
	var got models.LoginRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		reply(models.LoginResponse{AccessToken: "a1", RefreshToken: "r1", User: student})(w, r)
	})
	mux.Handle("GET /notifications", reply([]models.Notification{{NotificationID: "n1", Title: "Reminder"}}))

	a := newTestApp(t, mux, " s@example.com \nsecret\n")
	ctx := context.Background()
	require.NoError(t, a.Navigate(ctx, "/notifications"))

	require.NoError(t, a.Login(ctx))

	assert.Equal(t, models.LoginRequest{Email: "s@example.com", Password: "secret"}, got)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "/notifications", a.currentPath())
	out := a.output()
	assert.Contains(t, out, "Logged in as Sam (student)")
	assert.Contains(t, out, "Reminder")
	assert.Contains(t, out, "1 unread")
}

func TestLogin_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid email or password"}`)
	})
	a := newTestApp(t, mux, "s@example.com\nwrong\n")

	err := a.Login(context.Background())

	require.Error(t, err)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, a.output(), "Invalid email or password")
}

func TestRegister(t *testing.T) {
	var got models.RegisterRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})
	a := newTestApp(t, mux, "new@example.com\nsecret1\nNew Student\nStudent\n")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "secret1", got.Password)
	assert.Equal(t, "New Student", got.FullName)
	assert.Equal(t, models.RoleStudent, got.Role)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.PathLogin, a.currentPath())
	assert.Contains(t, a.output(), "Account created")
}

func TestRegister_PsychologistRejectedLocally(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	a := newTestApp(t, mux, "doc@example.com\nsecret1\nDoc\npsychologist\n")

	require.Error(t, a.Register(context.Background()))

	assert.Zero(t, calls.Load())
	assert.Contains(t, a.output(), "only students and parents can self-register")
}

func TestLogout(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)
	a.setPath("/profile")

	require.NoError(t, a.Logout(context.Background()))

	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.PathHome, a.currentPath())
	assert.Contains(t, a.output(), "Logged out.")
}

func TestForcedLogout_MovesToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /appointments/my", status(http.StatusUnauthorized))
	mux.Handle("POST /auth/refresh", status(http.StatusUnauthorized))
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)

	require.Error(t, a.Navigate(context.Background(), "/appointments"))
	require.NoError(t, a.Close())

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.PathLogin, a.currentPath())
	assert.Equal(t, "/appointments", a.returnTo)
	assert.Contains(t, a.output(), "Your session has expired, please log in again.")
	assert.Empty(t, a.stores.Appointments.Snapshot().Appointments)
}

func TestEnroll(t *testing.T) {
	var enrolled atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /programs/p1/enroll", func(w http.ResponseWriter, r *http.Request) {
		enrolled.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /programs", func(w http.ResponseWriter, r *http.Request) {
		reply([]models.Program{{ProgramID: "p1", Title: "Mindfulness", Capacity: 10, EnrolledCount: 1, IsEnrolled: enrolled.Load()}})(w, r)
	})
	mux.Handle("GET /programs/enrolled", reply([]models.Program{{ProgramID: "p1", Title: "Mindfulness", Capacity: 10, EnrolledCount: 1, IsEnrolled: true}}))
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)

	require.NoError(t, a.Enroll(context.Background(), "p1"))
	a.stores.Programs.Wait()

	assert.True(t, enrolled.Load())
	assert.Contains(t, a.output(), "Enrolled in p1.")
	st := a.stores.Programs.Snapshot()
	require.Len(t, st.Enrolled, 1)
	assert.Empty(t, st.Pending)
}

func TestEnroll_NotAllowedForPsychologist(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })
	a := newTestApp(t, mux, "")
	a.loginAs(t, psychologist)

	require.NoError(t, a.Enroll(context.Background(), "p1"))

	assert.Zero(t, calls.Load())
	assert.Contains(t, a.output(), "You are not allowed to do this.")
}

func TestCommands_RequireLogin(t *testing.T) {
	a := newTestApp(t, http.NewServeMux(), "")

	require.NoError(t, a.CancelAppointment(context.Background(), "ap1"))

	assert.Contains(t, a.output(), "Please log in first.")
}

func TestTakeSurvey(t *testing.T) {
	survey := models.Survey{
		SurveyID: "s1",
		Title:    "Wellbeing check",
		Questions: []models.Question{
			{QuestionID: "q1", Text: "How did you sleep?", Options: []models.Option{{OptionID: "o1", Text: "Well"}, {OptionID: "o2", Text: "Badly", Score: 2}}},
			{QuestionID: "q2", Text: "Do you feel anxious?", Options: []models.Option{{OptionID: "o3", Text: "No"}, {OptionID: "o4", Text: "Yes", Score: 3}}},
		},
	}
	var got models.SubmitSurveyRequest
	mux := http.NewServeMux()
	mux.Handle("GET /surveys/s1", reply(survey))
	mux.HandleFunc("POST /surveys/s1/submit", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		reply(models.SurveyResult{ResultID: "r1", SurveyID: "s1", Score: 5, Level: "moderate"})(w, r)
	})
	a := newTestApp(t, mux, "2\n2\n")
	a.loginAs(t, student)

	require.NoError(t, a.TakeSurvey(context.Background(), "s1"))

	assert.Equal(t, []models.Answer{{QuestionID: "q1", OptionID: "o2"}, {QuestionID: "q2", OptionID: "o4"}}, got.Answers)
	out := a.output()
	assert.Contains(t, out, "How did you sleep?")
	assert.Contains(t, out, "Score: 5")
	assert.Contains(t, out, "Level: moderate")
}

func TestTakeSurvey_InvalidChoice(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.Handle("GET /surveys/s1", reply(models.Survey{
		SurveyID:  "s1",
		Questions: []models.Question{{QuestionID: "q1", Options: []models.Option{{OptionID: "o1"}}}},
	}))
	mux.HandleFunc("POST /surveys/s1/submit", func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })
	a := newTestApp(t, mux, "7\n")
	a.loginAs(t, student)

	err := a.TakeSurvey(context.Background(), "s1")

	require.ErrorIs(t, err, ErrInvalidChoice)
	assert.Zero(t, calls.Load())
}

func TestBook_Student(t *testing.T) {
	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.Local)
	start := day.Add(10 * time.Hour)

	var gotDate string
	var got models.BookAppointmentRequest
	mux := http.NewServeMux()
	mux.Handle("GET /psychologists", reply([]models.Psychologist{{PsychologistID: "ps1", FullName: "Dr. Lee"}}))
	mux.HandleFunc("GET /psychologists/ps1/slots", func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		reply([]models.TimeSlot{
			{SlotID: "sl1", PsychologistID: "ps1", StartTime: start.Add(-time.Hour), EndTime: start, Available: false},
			{SlotID: "sl2", PsychologistID: "ps1", StartTime: start, EndTime: start.Add(time.Hour), Available: true},
		})(w, r)
	})
	mux.HandleFunc("POST /appointments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		reply(models.Appointment{AppointmentID: "ap1", StudentID: "u1", PsychologistID: "ps1", ScheduledAt: start, Status: models.AppointmentPending})(w, r)
	})
	a := newTestApp(t, mux, "1\n2026-05-02\n1\nexam stress\n")
	a.loginAs(t, student)

	require.NoError(t, a.Book(context.Background()))

	assert.Equal(t, "2026-05-02", gotDate)
	assert.Equal(t, models.BookAppointmentRequest{StudentID: "u1", PsychologistID: "ps1", SlotID: "sl2", Reason: "exam stress"}, got)
	assert.Contains(t, a.output(), "Booked ap1 with Dr. Lee")
	require.Len(t, a.stores.Appointments.Snapshot().Appointments, 1)
}

func TestBook_ParentWithOneChild(t *testing.T) {
	var got models.BookAppointmentRequest
	start := time.Date(2026, 5, 2, 10, 0, 0, 0, time.Local)
	mux := http.NewServeMux()
	mux.Handle("GET /parents/children", reply([]models.Child{{StudentID: "c1", FullName: "Kid"}}))
	mux.Handle("GET /psychologists", reply([]models.Psychologist{{PsychologistID: "ps1", FullName: "Dr. Lee"}}))
	mux.Handle("GET /psychologists/ps1/slots", reply([]models.TimeSlot{
		{SlotID: "sl1", PsychologistID: "ps1", StartTime: start, EndTime: start.Add(time.Hour), Available: true},
	}))
	mux.HandleFunc("POST /appointments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		reply(models.Appointment{AppointmentID: "ap1", StudentID: "c1", PsychologistID: "ps1", ScheduledAt: start, Status: models.AppointmentPending})(w, r)
	})
	a := newTestApp(t, mux, "1\n2026-05-02\n1\n\n")
	a.loginAs(t, parent)

	require.NoError(t, a.Book(context.Background()))

	assert.Equal(t, "c1", got.StudentID)
}

func TestBook_BadDate(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /psychologists", reply([]models.Psychologist{{PsychologistID: "ps1", FullName: "Dr. Lee"}}))
	a := newTestApp(t, mux, "1\ntomorrow\n")
	a.loginAs(t, student)

	require.ErrorIs(t, a.Book(context.Background()), models.ErrInvalidPayload)
	assert.Contains(t, a.output(), "date must look like")
}

func TestSetAppointmentStatus(t *testing.T) {
	var got models.UpdateAppointmentStatusRequest
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /appointments/ap1/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		reply(models.Appointment{AppointmentID: "ap1", PsychologistID: "u3", ScheduledAt: time.Now(), Status: got.Status})(w, r)
	})
	a := newTestApp(t, mux, "")
	a.loginAs(t, psychologist)

	require.NoError(t, a.SetAppointmentStatus(context.Background(), "ap1", "Confirmed", "see you"))

	assert.Equal(t, models.UpdateAppointmentStatusRequest{Status: models.AppointmentConfirmed, Notes: "see you"}, got)
	assert.Contains(t, a.output(), "Appointment ap1 is now confirmed.")
}

func TestNotificationsCommands(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /notifications", reply([]models.Notification{{NotificationID: "n1"}, {NotificationID: "n2"}}))
	mux.Handle("PATCH /notifications/n1/read", status(http.StatusNoContent))
	mux.Handle("PATCH /notifications/read-all", status(http.StatusNoContent))
	a := newTestApp(t, mux, "")
	a.loginAs(t, student)
	ctx := context.Background()

	require.NoError(t, a.Navigate(ctx, "/notifications"))
	require.NoError(t, a.MarkRead(ctx, "n1"))
	assert.Equal(t, 1, a.stores.Notifications.Snapshot().UnreadCount)

	require.NoError(t, a.MarkAllRead(ctx))
	assert.Zero(t, a.stores.Notifications.Snapshot().UnreadCount)
}

func TestShowArticle(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /articles/ar1", reply(models.Article{ArticleID: "ar1", Title: "Sleep", Content: "Go to bed early.", Tags: []string{"sleep"}}))
	a := newTestApp(t, mux, "")

	require.NoError(t, a.ShowArticle(context.Background(), "ar1"))

	out := a.output()
	assert.Contains(t, out, "Go to bed early.")
	assert.Contains(t, out, "tags: sleep")
}

func TestDashboardView(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /users", reply([]models.User{student, parent, manager}))
	mux.Handle("GET /programs", reply([]models.Program{{ProgramID: "p1", Title: "Mindfulness"}}))
	mux.Handle("GET /notifications", status(http.StatusInternalServerError))
	a := newTestApp(t, mux, "")
	a.loginAs(t, manager)

	require.NoError(t, a.Navigate(context.Background(), guard.PathDashboard))

	out := a.output()
	assert.Contains(t, out, "Hello, Max")
	assert.Contains(t, out, "Programs: 1")
	assert.Contains(t, out, "student: 1")
	assert.Contains(t, out, "notifications unavailable")
}

func TestHelpAndWhoAmI(t *testing.T) {
	a := newTestApp(t, http.NewServeMux(), "")
	ctx := context.Background()

	require.NoError(t, a.Help(ctx))
	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, a.output(), "Available commands: register, login")
	assert.Contains(t, a.output(), "Not logged in.")

	a.loginAs(t, manager)
	require.NoError(t, a.Help(ctx))
	require.NoError(t, a.WhoAmI(ctx))
	out := a.output()
	assert.Contains(t, out, "/manager/users")
	assert.NotContains(t, out, "/parent/children")
	assert.Contains(t, out, "Max <m@example.com>, manager")
	assert.Equal(t, "(m@example.com manager) /", a.getStatus())
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	l, flush, err := newLogger(cfg)
	require.NoError(t, err)
	assert.IsType(t, &logging.SlogLogger{}, l)
	assert.NoError(t, flush())

	cfg.LogBackend = "zap"
	l, _, err = newLogger(cfg)
	require.NoError(t, err)
	assert.IsType(t, &logging.ZapLogger{}, l)

	cfg.LogBackend = "logrus"
	_, _, err = newLogger(cfg)
	require.Error(t, err)
}
