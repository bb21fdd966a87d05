package models

import "time"

type Program struct {
	ProgramID     string    `json:"programId"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Facilitator   string    `json:"facilitator,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Capacity      int       `json:"capacity"`
	EnrolledCount int       `json:"enrolledCount"`
	IsEnrolled    bool      `json:"isEnrolled"`
	Status        string    `json:"status,omitempty"`
}

func (p Program) Validate() error {
	if err := required("program", "programId", p.ProgramID); err != nil {
		return err
	}
	if err := required("program", "title", p.Title); err != nil {
		return err
	}
	if p.Capacity < 0 || p.EnrolledCount < 0 {
		return invalid("program %s: negative counters", p.ProgramID)
	}
	return nil
}

// Full reports whether no seat is left. Capacity 0 means unlimited.
func (p Program) Full() bool {
	return p.Capacity > 0 && p.EnrolledCount >= p.Capacity
}

type ProgramRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Facilitator string    `json:"facilitator,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Capacity    int       `json:"capacity"`
}

func (r ProgramRequest) Validate() error {
	if r.Title == "" {
		return invalid("program: title is required")
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return invalid("program: end date before start date")
	}
	if r.Capacity < 0 {
		return invalid("program: capacity must not be negative")
	}
	return nil
}
