package client

import (
	"context"
	"net/url"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Appointments defines the appointment operations
type Appointments interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Mine(ctx context.Context) ([]models.Appointment, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error)
}

type appointmentsClient struct {
	client *BaseClient
}

func NewAppointmentsClient(client *BaseClient) Appointments {
	return &appointmentsClient{client: client}
}

func (c *appointmentsClient) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	q := url.Values{}
	if filter.StudentID != "" {
		q.Set("studentId", filter.StudentID)
	}
	if filter.PsychologistID != "" {
		q.Set("psychologistId", filter.PsychologistID)
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	resp, err := c.client.Get(ctx, withQuery("/appointments", q))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Appointment](resp)
}

// Mine lists the appointments of the logged-in user, whatever the role.
func (c *appointmentsClient) Mine(ctx context.Context) ([]models.Appointment, error) {
	resp, err := c.client.Get(ctx, "/appointments/my")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Appointment](resp)
}

func (c *appointmentsClient) Get(ctx context.Context, id string) (*models.Appointment, error) {
	resp, err := c.client.Get(ctx, resourcePath("appointments", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](resp)
}

func (c *appointmentsClient) Book(ctx context.Context, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.client.Post(ctx, "/appointments", req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](resp)
}

func (c *appointmentsClient) Cancel(ctx context.Context, id string) (*models.Appointment, error) {
	resp, err := c.client.Patch(ctx, resourcePath("appointments", id, "cancel"), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](resp)
}

func (c *appointmentsClient) UpdateStatus(ctx context.Context, id string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	resp, err := c.client.Patch(ctx, resourcePath("appointments", id, "status"), req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](resp)
}

// Psychologists defines the psychologist directory operations
type Psychologists interface {
	List(ctx context.Context) ([]models.Psychologist, error)
	Slots(ctx context.Context, psychologistID string, day time.Time) ([]models.TimeSlot, error)
}

type psychologistsClient struct {
	client *BaseClient
}

func NewPsychologistsClient(client *BaseClient) Psychologists {
	return &psychologistsClient{client: client}
}

func (c *psychologistsClient) List(ctx context.Context) ([]models.Psychologist, error) {
	resp, err := c.client.Get(ctx, "/psychologists")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Psychologist](resp)
}

// Slots lists the free slots of a psychologist; a zero day lists all of them.
func (c *psychologistsClient) Slots(ctx context.Context, psychologistID string, day time.Time) ([]models.TimeSlot, error) {
	q := url.Values{}
	if !day.IsZero() {
		q.Set("date", day.Format(time.DateOnly))
	}
	resp, err := c.client.Get(ctx, withQuery(resourcePath("psychologists", psychologistID, "slots"), q))
	if err != nil {
		return nil, err
	}
	return decodeList[models.TimeSlot](resp)
}
