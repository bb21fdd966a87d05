package models

import "time"

type Option struct {
	OptionID string `json:"optionId"`
	Text     string `json:"text"`
	Score    int    `json:"score"`
}

type Question struct {
	QuestionID string   `json:"questionId"`
	Text       string   `json:"text"`
	Options    []Option `json:"options"`
}

type Survey struct {
	SurveyID    string     `json:"surveyId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}

func (s Survey) Validate() error {
	if err := required("survey", "surveyId", s.SurveyID); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		if q.QuestionID == "" {
			return invalid("survey %s: question without id", s.SurveyID)
		}
		if _, dup := seen[q.QuestionID]; dup {
			return invalid("survey %s: duplicate question %s", s.SurveyID, q.QuestionID)
		}
		seen[q.QuestionID] = struct{}{}
		if len(q.Options) == 0 {
			return invalid("survey %s: question %s has no options", s.SurveyID, q.QuestionID)
		}
	}
	return nil
}

type Answer struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type SubmitSurveyRequest struct {
	Answers []Answer `json:"answers"`
}

// CheckAnswers verifies that every question is answered exactly once with one
// of its own options.
func (s Survey) CheckAnswers(answers []Answer) error {
	options := make(map[string]map[string]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		set := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			set[o.OptionID] = struct{}{}
		}
		options[q.QuestionID] = set
	}

	answered := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		set, ok := options[a.QuestionID]
		if !ok {
			return invalid("survey %s: unknown question %s", s.SurveyID, a.QuestionID)
		}
		if _, ok := set[a.OptionID]; !ok {
			return invalid("survey %s: option %s does not belong to question %s", s.SurveyID, a.OptionID, a.QuestionID)
		}
		if _, dup := answered[a.QuestionID]; dup {
			return invalid("survey %s: question %s answered twice", s.SurveyID, a.QuestionID)
		}
		answered[a.QuestionID] = struct{}{}
	}
	if len(answered) != len(s.Questions) {
		return invalid("survey %s: %d of %d questions answered", s.SurveyID, len(answered), len(s.Questions))
	}
	return nil
}

type SurveyResult struct {
	ResultID       string    `json:"resultId"`
	SurveyID       string    `json:"surveyId"`
	SurveyTitle    string    `json:"surveyTitle,omitempty"`
	UserID         string    `json:"userId"`
	Score          int       `json:"score"`
	Level          string    `json:"level,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (r SurveyResult) Validate() error {
	if err := required("survey result", "resultId", r.ResultID); err != nil {
		return err
	}
	return required("survey result", "surveyId", r.SurveyID)
}

type SurveyRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Questions   []Question `json:"questions"`
}
