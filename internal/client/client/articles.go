package client

import (
	"context"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

// Articles defines the article library operations
type Articles interface {
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error)
}

type articlesClient struct {
	client *BaseClient
}

func NewArticlesClient(client *BaseClient) Articles {
	return &articlesClient{client: client}
}

func (c *articlesClient) List(ctx context.Context) ([]models.Article, error) {
	resp, err := c.client.Get(ctx, "/articles")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Article](resp)
}

func (c *articlesClient) Get(ctx context.Context, id string) (*models.Article, error) {
	resp, err := c.client.Get(ctx, resourcePath("articles", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Article](resp)
}

func (c *articlesClient) Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.client.Post(ctx, "/articles", req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Article](resp)
}
