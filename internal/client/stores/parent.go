package stores

import (
	"context"
	"maps"
	"slices"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// ParentState keys per-child data by the child's student ID.
type ParentState struct {
	Status
	Children     []models.Child
	Appointments map[string][]models.Appointment
	Results      map[string][]models.SurveyResult
}

func cloneParent(s ParentState) ParentState {
	s.Children = slices.Clone(s.Children)
	s.Appointments = maps.Clone(s.Appointments)
	for k, v := range s.Appointments {
		s.Appointments[k] = slices.Clone(v)
	}
	s.Results = maps.Clone(s.Results)
	for k, v := range s.Results {
		s.Results[k] = slices.Clone(v)
	}
	return s
}

type Parent struct {
	*store[ParentState]
	api client.Parents
}

func NewParent(api client.Parents) *Parent {
	return &Parent{store: newStore(cloneParent), api: api}
}

func (s *Parent) Snapshot() ParentState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

func (s *Parent) FetchChildren(ctx context.Context) ([]models.Child, error) {
	return act(s.store, func() ([]models.Child, error) {
		return s.api.Children(ctx)
	}, func(st *ParentState, v []models.Child) {
		st.Children = v
	})
}

func (s *Parent) FetchChildAppointments(ctx context.Context, childID string) ([]models.Appointment, error) {
	return act(s.store, func() ([]models.Appointment, error) {
		return s.api.ChildAppointments(ctx, childID)
	}, func(st *ParentState, v []models.Appointment) {
		if st.Appointments == nil {
			st.Appointments = make(map[string][]models.Appointment)
		}
		st.Appointments[childID] = v
	})
}

func (s *Parent) FetchChildSurveyResults(ctx context.Context, childID string) ([]models.SurveyResult, error) {
	return act(s.store, func() ([]models.SurveyResult, error) {
		return s.api.ChildSurveyResults(ctx, childID)
	}, func(st *ParentState, v []models.SurveyResult) {
		if st.Results == nil {
			st.Results = make(map[string][]models.SurveyResult)
		}
		st.Results[childID] = v
	})
}
