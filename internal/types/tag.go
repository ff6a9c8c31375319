package types

import "github.com/google/uuid"

// DefaultTagIcon is the fallback icon key when a tag has none stored.
const DefaultTagIcon = "Tag"

// Tag is a URL-routable hotel attribute. Hotels reference tags by slug,
// matched by string equality at read time.
type Tag struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Icon       string    `json:"icon"`
	IsFeatured bool      `json:"is_featured"`
}

type CreateTagParams struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Icon       string `json:"icon"`
	IsFeatured bool   `json:"is_featured"`
}

type UpdateTagParams struct {
	Name       *string `json:"name,omitempty"`
	Slug       *string `json:"slug,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	IsFeatured *bool   `json:"is_featured,omitempty"`
}
