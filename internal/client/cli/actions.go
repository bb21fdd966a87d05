package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/guard"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
)

// Book walks through choosing a student (parents only), a psychologist, a
// day and a free slot, then books the appointment.
func (a *App) Book(ctx context.Context) error {
	s, ok := a.allowed("/appointments/book")
	if !ok {
		return nil
	}

	studentID, err := a.chooseStudent(ctx, s)
	if err != nil {
		return a.fail(ctx, "book", err)
	}

	psychologists, err := a.stores.Appointments.FetchPsychologists(ctx)
	if err != nil {
		return a.fail(ctx, "book", err)
	}
	if len(psychologists) == 0 {
		a.println("No psychologists are available.")
		return nil
	}
	a.println(renderPsychologists(psychologists))
	i, err := getChoice(a.reader, "Choose a psychologist", len(psychologists), a.out)
	if err != nil {
		return a.fail(ctx, "book", err)
	}
	psychologist := psychologists[i]

	dayText, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	day, err := time.ParseInLocation(dateLayout, dayText, time.Local)
	if err != nil {
		return a.fail(ctx, "book", fmt.Errorf("%w: date must look like 2025-01-31", models.ErrInvalidPayload))
	}

	slots, err := a.stores.Appointments.FetchSlots(ctx, psychologist.PsychologistID, day)
	if err != nil {
		return a.fail(ctx, "book", err)
	}
	free := make([]models.TimeSlot, 0, len(slots))
	for _, sl := range slots {
		if sl.Available {
			free = append(free, sl)
		}
	}
	if len(free) == 0 {
		a.println("No free slots on that day.")
		return nil
	}
	a.println(renderSlots(free))
	j, err := getChoice(a.reader, "Choose a time", len(free), a.out)
	if err != nil {
		return a.fail(ctx, "book", err)
	}

	reason, err := getSimpleText(a.reader, "Reason (optional)", a.out)
	if err != nil {
		return err
	}

	appt, err := a.stores.Appointments.Book(ctx, models.BookAppointmentRequest{
		StudentID:      studentID,
		PsychologistID: psychologist.PsychologistID,
		SlotID:         free[j].SlotID,
		Reason:         reason,
	})
	if err != nil {
		return a.fail(ctx, "book", err)
	}
	a.println(okText(fmt.Sprintf("Booked %s with %s on %s.", appt.AppointmentID, psychologist.FullName, formatTime(appt.ScheduledAt))))
	return nil
}

// chooseStudent returns the student an appointment is booked for: the user
// themselves, or one of a parent's children.
func (a *App) chooseStudent(ctx context.Context, s session.Session) (string, error) {
	if s.Role() != models.RoleParent {
		return s.UserID(), nil
	}
	children, err := a.stores.Parent.FetchChildren(ctx)
	if err != nil {
		return "", err
	}
	if len(children) == 0 {
		return "", fmt.Errorf("%w: no children linked to this account", models.ErrInvalidPayload)
	}
	if len(children) == 1 {
		return children[0].StudentID, nil
	}
	a.println(renderChildren(children))
	i, err := getChoice(a.reader, "Book for which child", len(children), a.out)
	if err != nil {
		return "", err
	}
	return children[i].StudentID, nil
}

func (a *App) CancelAppointment(ctx context.Context, id string) error {
	if _, ok := a.allowed("/appointments"); !ok {
		return nil
	}
	if _, err := a.stores.Appointments.Cancel(ctx, id); err != nil {
		return a.fail(ctx, "cancel", err)
	}
	a.println(okText("Appointment " + id + " cancelled."))
	return nil
}

// SetAppointmentStatus lets a psychologist confirm, complete or cancel a session.
func (a *App) SetAppointmentStatus(ctx context.Context, id, status, notes string) error {
	if _, ok := a.allowed("/psychologist/schedule"); !ok {
		return nil
	}
	st := models.AppointmentStatus(strings.ToLower(status))
	appt, err := a.stores.Appointments.UpdateStatus(ctx, id, st, notes)
	if err != nil {
		return a.fail(ctx, "status", err)
	}
	a.println(okText(fmt.Sprintf("Appointment %s is now %s.", appt.AppointmentID, appt.Status)))
	return nil
}

// Enroll and Unenroll change the local state at once; the server's view
// replaces it in the background.
func (a *App) Enroll(ctx context.Context, id string) error {
	if _, ok := a.allowed("/program"); !ok {
		return nil
	}
	if err := a.stores.Programs.Enroll(ctx, id); err != nil {
		return a.fail(ctx, "enroll", err)
	}
	a.println(okText("Enrolled in " + id + "."))
	return nil
}

func (a *App) Unenroll(ctx context.Context, id string) error {
	if _, ok := a.allowed("/program"); !ok {
		return nil
	}
	if err := a.stores.Programs.CancelEnrollment(ctx, id); err != nil {
		return a.fail(ctx, "unenroll", err)
	}
	a.println(okText("Enrollment in " + id + " cancelled."))
	return nil
}

// TakeSurvey asks every question of the survey and submits the answers.
func (a *App) TakeSurvey(ctx context.Context, id string) error {
	if _, ok := a.allowed("/surveys"); !ok {
		return nil
	}
	sv, err := a.stores.Surveys.FetchByID(ctx, id)
	if err != nil {
		return a.fail(ctx, "take", err)
	}
	a.println(titleText(sv.Title))
	if sv.Description != "" {
		a.println(sv.Description)
	}

	answers := make([]models.Answer, 0, len(sv.Questions))
	for n, q := range sv.Questions {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s", n+1, q.Text)
		for i, o := range q.Options {
			fmt.Fprintf(&b, "\n   %d) %s", i+1, o.Text)
		}
		a.println(b.String())

		i, err := getChoice(a.reader, "Your answer", len(q.Options), a.out)
		if err != nil {
			return a.fail(ctx, "take", err)
		}
		answers = append(answers, models.Answer{QuestionID: q.QuestionID, OptionID: q.Options[i].OptionID})
	}

	res, err := a.stores.Surveys.Submit(ctx, id, answers)
	if err != nil {
		return a.fail(ctx, "take", err)
	}
	a.println(okText(fmt.Sprintf("Thank you! Score: %d", res.Score)))
	if res.Level != "" {
		a.println("Level: " + res.Level)
	}
	if res.Recommendation != "" {
		a.println(res.Recommendation)
	}
	return nil
}

func (a *App) MarkRead(ctx context.Context, id string) error {
	if _, ok := a.allowed("/notifications"); !ok {
		return nil
	}
	if err := a.stores.Notifications.MarkRead(ctx, id); err != nil {
		return a.fail(ctx, "read", err)
	}
	a.println(fmt.Sprintf("%d unread", a.stores.Notifications.Snapshot().UnreadCount))
	return nil
}

func (a *App) MarkAllRead(ctx context.Context) error {
	if _, ok := a.allowed("/notifications"); !ok {
		return nil
	}
	if err := a.stores.Notifications.MarkAllRead(ctx); err != nil {
		return a.fail(ctx, "readall", err)
	}
	a.println("All notifications marked as read.")
	return nil
}

func (a *App) ShowArticle(ctx context.Context, id string) error {
	if _, ok := a.allowed(guard.PathArticles); !ok {
		return nil
	}
	art, err := a.stores.Articles.FetchByID(ctx, id)
	if err != nil {
		return a.fail(ctx, "article", err)
	}
	a.println(renderArticle(*art))
	return nil
}
