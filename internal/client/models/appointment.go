package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Upcoming reports whether the appointment still needs attendance.
func (a Appointment) Upcoming(now time.Time) bool {
	return (a.Status == AppointmentPending || a.Status == AppointmentConfirmed) && a.ScheduledAt.After(now)
}

type Appointment struct {
	AppointmentID    string            `json:"appointmentId"`
	StudentID        string            `json:"studentId"`
	PsychologistID   string            `json:"psychologistId"`
	PsychologistName string            `json:"psychologistName,omitempty"`
	BookedBy         string            `json:"bookedBy,omitempty"`
	SlotID           string            `json:"slotId,omitempty"`
	ScheduledAt      time.Time         `json:"scheduledAt"`
	DurationMinutes  int               `json:"durationMinutes,omitempty"`
	Status           AppointmentStatus `json:"status"`
	Reason           string            `json:"reason,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	MeetingURL       string            `json:"meetingUrl,omitempty"`
}

func (a Appointment) Validate() error {
	if err := required("appointment", "appointmentId", a.AppointmentID); err != nil {
		return err
	}
	if err := required("appointment", "psychologistId", a.PsychologistID); err != nil {
		return err
	}
	if !a.Status.Valid() {
		return invalid("appointment %s: unknown status %q", a.AppointmentID, a.Status)
	}
	if a.ScheduledAt.IsZero() {
		return invalid("appointment %s: missing scheduledAt", a.AppointmentID)
	}
	return nil
}

// AppointmentFilter narrows GET /appointments; empty fields are omitted.
type AppointmentFilter struct {
	StudentID      string
	PsychologistID string
	Status         AppointmentStatus
}

type BookAppointmentRequest struct {
	StudentID      string `json:"studentId"`
	PsychologistID string `json:"psychologistId"`
	SlotID         string `json:"slotId"`
	Reason         string `json:"reason,omitempty"`
}

func (r BookAppointmentRequest) Validate() error {
	if r.StudentID == "" || r.PsychologistID == "" || r.SlotID == "" {
		return invalid("booking: student, psychologist and slot are required")
	}
	return nil
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status"`
	Notes  string            `json:"notes,omitempty"`
}

type Psychologist struct {
	PsychologistID  string  `json:"psychologistId"`
	FullName        string  `json:"fullName"`
	Specialization  string  `json:"specialization,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	YearsExperience int     `json:"yearsExperience,omitempty"`
}

func (p Psychologist) Validate() error {
	return required("psychologist", "psychologistId", p.PsychologistID)
}

type TimeSlot struct {
	SlotID         string    `json:"slotId"`
	PsychologistID string    `json:"psychologistId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Available      bool      `json:"available"`
}

func (s TimeSlot) Validate() error {
	if err := required("slot", "slotId", s.SlotID); err != nil {
		return err
	}
	if !s.EndTime.After(s.StartTime) {
		return invalid("slot %s: end must be after start", s.SlotID)
	}
	return nil
}
