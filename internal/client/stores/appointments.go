package stores

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type AppointmentsState struct {
	Status
	Appointments  []models.Appointment
	Current       *models.Appointment
	Psychologists []models.Psychologist
	Slots         []models.TimeSlot
}

func cloneAppointments(s AppointmentsState) AppointmentsState {
	s.Appointments = slices.Clone(s.Appointments)
	s.Current = ptrClone(s.Current)
	s.Psychologists = slices.Clone(s.Psychologists)
	s.Slots = slices.Clone(s.Slots)
	return s
}

func appointmentID(a models.Appointment) string { return a.AppointmentID }

type Appointments struct {
	*store[AppointmentsState]
	api           client.Appointments
	psychologists client.Psychologists
}

func NewAppointments(api client.Appointments, psychologists client.Psychologists) *Appointments {
	return &Appointments{
		store:         newStore(cloneAppointments),
		api:           api,
		psychologists: psychologists,
	}
}

func (s *Appointments) Snapshot() AppointmentsState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

// Upcoming returns the pending or confirmed appointments after now, soonest first.
func (s *Appointments) Upcoming(now time.Time) []models.Appointment {
	st, _ := s.snapshot()
	var out []models.Appointment
	for _, a := range st.Appointments {
		if a.Upcoming(now) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Appointment) int { return a.ScheduledAt.Compare(b.ScheduledAt) })
	return out
}

// FetchMine loads the appointments of the logged-in user.
func (s *Appointments) FetchMine(ctx context.Context) ([]models.Appointment, error) {
	return act(s.store, func() ([]models.Appointment, error) {
		return s.api.Mine(ctx)
	}, func(st *AppointmentsState, v []models.Appointment) {
		st.Appointments = v
	})
}

// Fetch loads appointments matching filter.
func (s *Appointments) Fetch(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return act(s.store, func() ([]models.Appointment, error) {
		return s.api.List(ctx, filter)
	}, func(st *AppointmentsState, v []models.Appointment) {
		st.Appointments = v
	})
}

func (s *Appointments) FetchByID(ctx context.Context, id string) (*models.Appointment, error) {
	return act(s.store, func() (*models.Appointment, error) {
		return s.api.Get(ctx, id)
	}, func(st *AppointmentsState, v *models.Appointment) {
		st.Current = v
	})
}

// Book creates an appointment and marks its slot as taken.
func (s *Appointments) Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	return act(s.store, func() (*models.Appointment, error) {
		return s.api.Book(ctx, req)
	}, func(st *AppointmentsState, v *models.Appointment) {
		st.Appointments = replaceByID(st.Appointments, appointmentID, *v)
		for i := range st.Slots {
			if st.Slots[i].SlotID == req.SlotID {
				st.Slots[i].Available = false
			}
		}
	})
}

func (s *Appointments) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	return s.replace(func() (*models.Appointment, error) { return s.api.Cancel(ctx, id) })
}

// UpdateStatus is used by psychologists to confirm or complete a session.
func (s *Appointments) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus, notes string) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, s.fail(invalidStatus(status))
	}
	return s.replace(func() (*models.Appointment, error) {
		return s.api.UpdateStatus(ctx, id, models.UpdateAppointmentStatusRequest{Status: status, Notes: notes})
	})
}

func (s *Appointments) replace(call func() (*models.Appointment, error)) (*models.Appointment, error) {
	return act(s.store, call, func(st *AppointmentsState, v *models.Appointment) {
		st.Appointments = replaceByID(st.Appointments, appointmentID, *v)
		if st.Current != nil && st.Current.AppointmentID == v.AppointmentID {
			st.Current = v
		}
	})
}

func (s *Appointments) FetchPsychologists(ctx context.Context) ([]models.Psychologist, error) {
	return act(s.store, func() ([]models.Psychologist, error) {
		return s.psychologists.List(ctx)
	}, func(st *AppointmentsState, v []models.Psychologist) {
		st.Psychologists = v
	})
}

// FetchSlots loads the free slots of a psychologist for day (zero day: all).
func (s *Appointments) FetchSlots(ctx context.Context, psychologistID string, day time.Time) ([]models.TimeSlot, error) {
	return act(s.store, func() ([]models.TimeSlot, error) {
		return s.psychologists.Slots(ctx, psychologistID, day)
	}, func(st *AppointmentsState, v []models.TimeSlot) {
		st.Slots = v
	})
}
