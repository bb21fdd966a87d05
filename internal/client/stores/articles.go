package stores

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
)

type ArticlesState struct {
	Status
	Articles []models.Article
	Selected *models.Article
}

func cloneArticles(s ArticlesState) ArticlesState {
	s.Articles = slices.Clone(s.Articles)
	s.Selected = ptrClone(s.Selected)
	return s
}

type Articles struct {
	*store[ArticlesState]
	api client.Articles
}

func NewArticles(api client.Articles) *Articles {
	return &Articles{store: newStore(cloneArticles), api: api}
}

func (s *Articles) Snapshot() ArticlesState {
	st, status := s.snapshot()
	st.Status = status
	return st
}

func (s *Articles) FetchAll(ctx context.Context) ([]models.Article, error) {
	return act(s.store, func() ([]models.Article, error) {
		return s.api.List(ctx)
	}, func(st *ArticlesState, v []models.Article) {
		st.Articles = v
	})
}

func (s *Articles) FetchByID(ctx context.Context, id string) (*models.Article, error) {
	return act(s.store, func() (*models.Article, error) {
		return s.api.Get(ctx, id)
	}, func(st *ArticlesState, v *models.Article) {
		st.Selected = v
	})
}

// Create publishes an article (psychologists and managers) and lists it first.
func (s *Articles) Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error) {
	return act(s.store, func() (*models.Article, error) {
		return s.api.Create(ctx, req)
	}, func(st *ArticlesState, v *models.Article) {
		st.Articles = append([]models.Article{*v}, st.Articles...)
	})
}
