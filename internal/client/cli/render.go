package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/services"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

const emptyList = "Nothing here yet."

var (
	titleText = color.New(color.FgCyan, color.Bold).SprintFunc()
	warnText  = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorText = color.New(color.FgRed).SprintFunc()
	okText    = color.New(color.FgGreen).SprintFunc()
)

func newTable(header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row(header))
	return tw
}

func displayName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateTimeLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderAppointments(list []models.Appointment) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "When", "Psychologist", "Status", "Reason")
	for _, a := range list {
		who := a.PsychologistName
		if who == "" {
			who = a.PsychologistID
		}
		tw.AppendRow(table.Row{a.AppointmentID, formatTime(a.ScheduledAt), who, a.Status, a.Reason})
	}
	return tw.Render()
}

// renderPrograms marks programs with an unconfirmed enroll or cancel with '*'.
func renderPrograms(list []models.Program, pending map[string]int64) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "Title", "Dates", "Seats", "Enrolled")
	for _, p := range list {
		enrolled := yesNo(p.IsEnrolled)
		if _, ok := pending[p.ProgramID]; ok {
			enrolled += "*"
		}
		seats := fmt.Sprintf("%d/%d", p.EnrolledCount, p.Capacity)
		if p.Full() {
			seats += " full"
		}
		dates := formatDate(p.StartDate) + " - " + formatDate(p.EndDate)
		tw.AppendRow(table.Row{p.ProgramID, p.Title, dates, seats, enrolled})
	}
	return tw.Render()
}

func renderSurveys(list []models.Survey) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "Title", "Category", "Questions")
	for _, s := range list {
		tw.AppendRow(table.Row{s.SurveyID, s.Title, s.Category, len(s.Questions)})
	}
	return tw.Render()
}

func renderResults(list []models.SurveyResult) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("Survey", "Score", "Level", "Completed")
	for _, r := range list {
		name := r.SurveyTitle
		if name == "" {
			name = r.SurveyID
		}
		tw.AppendRow(table.Row{name, r.Score, r.Level, formatTime(r.CompletedAt)})
	}
	return tw.Render()
}

func renderNotifications(list []models.Notification) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "", "Title", "Message", "Received")
	for _, n := range list {
		mark := ""
		if !n.IsRead {
			mark = "new"
		}
		tw.AppendRow(table.Row{n.NotificationID, mark, n.Title, n.Message, formatTime(n.CreatedAt)})
	}
	return tw.Render()
}

func renderUsers(list []models.User) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "Name", "Email", "Role", "Status")
	for _, u := range list {
		tw.AppendRow(table.Row{u.UserID, u.FullName, u.Email, u.Role, u.Status})
	}
	return tw.Render()
}

func renderChildren(list []models.Child) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "Name", "Grade", "School")
	for _, c := range list {
		tw.AppendRow(table.Row{c.StudentID, c.FullName, c.Grade, c.School})
	}
	return tw.Render()
}

func renderArticles(list []models.Article) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("ID", "Title", "Author", "Published")
	for _, a := range list {
		tw.AppendRow(table.Row{a.ArticleID, a.Title, a.Author, formatDate(a.PublishedAt)})
	}
	return tw.Render()
}

func renderArticle(a models.Article) string {
	var b strings.Builder
	fmt.Fprintln(&b, titleText(a.Title))
	if a.Author != "" {
		fmt.Fprintf(&b, "by %s, %s\n", a.Author, formatDate(a.PublishedAt))
	}
	if len(a.Tags) > 0 {
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(a.Tags, ", "))
	}
	b.WriteString("\n")
	if a.Content != "" {
		b.WriteString(a.Content)
	} else {
		b.WriteString(a.Summary)
	}
	return b.String()
}

func renderPsychologists(list []models.Psychologist) string {
	if len(list) == 0 {
		return emptyList
	}
	tw := newTable("#", "Name", "Specialization", "Experience")
	for i, p := range list {
		tw.AppendRow(table.Row{i + 1, p.FullName, p.Specialization, strconv.Itoa(p.YearsExperience) + "y"})
	}
	return tw.Render()
}

func renderSlots(list []models.TimeSlot) string {
	tw := newTable("#", "Start", "End")
	for i, s := range list {
		tw.AppendRow(table.Row{i + 1, formatTime(s.StartTime), s.EndTime.Local().Format("15:04")})
	}
	return tw.Render()
}

func renderProfile(u models.User) string {
	tw := newTable("Field", "Value")
	tw.AppendRow(table.Row{"Name", u.FullName})
	tw.AppendRow(table.Row{"Email", u.Email})
	tw.AppendRow(table.Row{"Role", u.Role})
	if u.Phone != "" {
		tw.AppendRow(table.Row{"Phone", u.Phone})
	}
	if u.DateOfBirth != "" {
		tw.AppendRow(table.Row{"Date of birth", u.DateOfBirth})
	}
	if u.Address != "" {
		tw.AppendRow(table.Row{"Address", u.Address})
	}
	return tw.Render()
}

func renderDashboard(d *services.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleText("Hello, "+displayName(d.User)))

	switch d.User.Role {
	case models.RoleStudent, models.RoleParent, models.RolePsychologist:
		fmt.Fprintf(&b, "\nUpcoming appointments (%d)\n", len(d.UpcomingAppointments))
		if len(d.UpcomingAppointments) > 0 {
			fmt.Fprintln(&b, renderAppointments(d.UpcomingAppointments))
		}
	}
	switch d.User.Role {
	case models.RoleStudent, models.RoleParent:
		fmt.Fprintf(&b, "Enrolled programs: %d\n", len(d.EnrolledPrograms))
		for _, p := range d.EnrolledPrograms {
			fmt.Fprintf(&b, "  - %s\n", p.Title)
		}
		fmt.Fprintf(&b, "Surveys to take: %d\n", len(d.PendingSurveys))
		for _, s := range d.PendingSurveys {
			fmt.Fprintf(&b, "  - %s (take %s)\n", s.Title, s.SurveyID)
		}
	case models.RoleManager:
		fmt.Fprintf(&b, "Programs: %d\n", d.Programs)
		roles := make([]string, 0, len(d.UsersByRole))
		for r := range d.UsersByRole {
			roles = append(roles, string(r))
		}
		slices.Sort(roles)
		fmt.Fprintln(&b, "Users:")
		for _, r := range roles {
			fmt.Fprintf(&b, "  %s: %d\n", r, d.UsersByRole[models.Role(r)])
		}
	}
	if d.User.Role == models.RoleParent {
		fmt.Fprintf(&b, "Children: %d\n", len(d.Children))
		for _, c := range d.Children {
			fmt.Fprintf(&b, "  - %s\n", c.FullName)
		}
	}
	fmt.Fprintf(&b, "Unread notifications: %d\n", d.UnreadNotifications)

	sections := make([]string, 0, len(d.Failed))
	for s := range d.Failed {
		sections = append(sections, s)
	}
	slices.Sort(sections)
	for _, s := range sections {
		fmt.Fprintln(&b, warnText(fmt.Sprintf("%s unavailable: %s", s, d.Failed[s])))
	}
	return strings.TrimRight(b.String(), "\n")
}
