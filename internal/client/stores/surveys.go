package stores

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type SurveysState struct {
	Status
	Surveys []models.Survey
	Current *models.Survey
	Results []models.SurveyResult
}

func cloneSurveys(s SurveysState) SurveysState {
	s.Surveys = slices.Clone(s.Surveys)
	s.Current = ptrClone(s.Current)
	s.Results = slices.Clone(s.Results)
	return s
}

type Surveys struct {
	*store[SurveysState]
	api client.Surveys
}

func NewSurveys(api client.Surveys) *Surveys {
	return &Surveys{store: newStore(cloneSurveys), api: api}
}

func (s *Surveys) Snapshot() SurveysState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

// Pending returns the surveys without a result of the logged-in user.
func (s *Surveys) Pending() []models.Survey {
	st, _ := s.snapshot()
	done := make(map[string]struct{}, len(st.Results))
	for _, r := range st.Results {
		done[r.SurveyID] = struct{}{}
	}
	var out []models.Survey
	for _, sv := range st.Surveys {
		if _, ok := done[sv.SurveyID]; !ok {
			out = append(out, sv)
		}
	}
	return out
}

func (s *Surveys) FetchAll(ctx context.Context) ([]models.Survey, error) {
	return act(s.store, func() ([]models.Survey, error) {
		return s.api.List(ctx)
	}, func(st *SurveysState, v []models.Survey) {
		st.Surveys = v
	})
}

// FetchByID loads a survey with its questions and makes it current.
func (s *Surveys) FetchByID(ctx context.Context, id string) (*models.Survey, error) {
	return act(s.store, func() (*models.Survey, error) {
		return s.api.Get(ctx, id)
	}, func(st *SurveysState, v *models.Survey) {
		st.Current = v
	})
}

// Submit sends the answers of survey id. When that survey is current the
// answers are checked against its questions first.
func (s *Surveys) Submit(ctx context.Context, id string, answers []models.Answer) (*models.SurveyResult, error) {
	st, _ := s.snapshot()
	if st.Current != nil && st.Current.SurveyID == id {
		if err := st.Current.CheckAnswers(answers); err != nil {
			return nil, s.fail(err)
		}
	}
	return act(s.store, func() (*models.SurveyResult, error) {
		return s.api.Submit(ctx, id, models.SubmitSurveyRequest{Answers: answers})
	}, func(st *SurveysState, v *models.SurveyResult) {
		st.Results = append(st.Results, *v)
	})
}

func (s *Surveys) FetchResults(ctx context.Context) ([]models.SurveyResult, error) {
	return act(s.store, func() ([]models.SurveyResult, error) {
		return s.api.Results(ctx)
	}, func(st *SurveysState, v []models.SurveyResult) {
		st.Results = v
	})
}

// Create adds a survey (managers only).
func (s *Surveys) Create(ctx context.Context, req models.SurveyRequest) (*models.Survey, error) {
	return act(s.store, func() (*models.Survey, error) {
		return s.api.Create(ctx, req)
	}, func(st *SurveysState, v *models.Survey) {
		st.Surveys = append(st.Surveys, *v)
	})
}
