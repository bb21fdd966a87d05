package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Surveys defines the assessment operations
type Surveys interface {
	List(ctx context.Context) ([]models.Survey, error)
	Get(ctx context.Context, id string) (*models.Survey, error)
	Submit(ctx context.Context, id string, req models.SubmitSurveyRequest) (*models.SurveyResult, error)
	Results(ctx context.Context) ([]models.SurveyResult, error)
	Create(ctx context.Context, req models.SurveyRequest) (*models.Survey, error)
}

type surveysClient struct {
	client *BaseClient
}

func NewSurveysClient(client *BaseClient) Surveys {
	return &surveysClient{client: client}
}

func (c *surveysClient) List(ctx context.Context) ([]models.Survey, error) {
	resp, err := c.client.Get(ctx, "/surveys")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Survey](resp)
}

func (c *surveysClient) Get(ctx context.Context, id string) (*models.Survey, error) {
	resp, err := c.client.Get(ctx, resourcePath("surveys", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Survey](resp)
}

func (c *surveysClient) Submit(ctx context.Context, id string, req models.SubmitSurveyRequest) (*models.SurveyResult, error) {
	resp, err := c.client.Post(ctx, resourcePath("surveys", id, "submit"), req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.SurveyResult](resp)
}

// Results lists the survey results of the logged-in user.
func (c *surveysClient) Results(ctx context.Context) ([]models.SurveyResult, error) {
	resp, err := c.client.Get(ctx, "/surveys/results")
	if err != nil {
		return nil, err
	}
	return decodeList[models.SurveyResult](resp)
}

func (c *surveysClient) Create(ctx context.Context, req models.SurveyRequest) (*models.Survey, error) {
	resp, err := c.client.Post(ctx, "/surveys", req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Survey](resp)
}
