package types

import "github.com/google/uuid"

// SearchTerm is a curated canned search shortcut shown under the search
// box.
type SearchTerm struct {
	ID   uuid.UUID `json:"id"`
	Term string    `json:"term"`
	Slug string    `json:"slug"`
}

type CreateSearchTermParams struct {
	Term string `json:"term"`
	Slug string `json:"slug"`
}

type UpdateSearchTermParams struct {
	Term *string `json:"term,omitempty"`
	Slug *string `json:"slug,omitempty"`
}
