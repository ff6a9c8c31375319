package types

import (
	"time"

	"github.com/google/uuid"
)

// Article is a travel-guide entry. Articles relate to hotels only
// through free-text location equality against the hotel's leading
// location segment; there is no stored relation.
type Article struct {
	ID              uuid.UUID  `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	MetaDescription string     `json:"meta_description"`
	CoverImageURL   string     `json:"cover_image_url"`
	ContentHTML     string     `json:"content_html"`
	Location        string     `json:"location"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ArticleTeaser is the projection used by "latest guides" widgets.
type ArticleTeaser struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	CoverImageURL string    `json:"cover_image_url"`
}

type CreateArticleParams struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	CoverImageURL   string `json:"cover_image_url"`
	ContentHTML     string `json:"content_html"`
	Location        string `json:"location"`
	IsPublished     bool   `json:"is_published"`
}

type UpdateArticleParams struct {
	Slug            *string `json:"slug,omitempty"`
	Title           *string `json:"title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	CoverImageURL   *string `json:"cover_image_url,omitempty"`
	ContentHTML     *string `json:"content_html,omitempty"`
	Location        *string `json:"location,omitempty"`
	IsPublished     *bool   `json:"is_published,omitempty"`
}
