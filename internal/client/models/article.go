package models

import "time"

type Article struct {
	ArticleID   string    `json:"articleId"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Content     string    `json:"content,omitempty"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (a Article) Validate() error {
	if err := required("article", "articleId", a.ArticleID); err != nil {
		return err
	}
	return required("article", "title", a.Title)
}

type ArticleRequest struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func (r ArticleRequest) Validate() error {
	if r.Title == "" || r.Content == "" {
		return invalid("article: title and content are required")
	}
	return nil
}
