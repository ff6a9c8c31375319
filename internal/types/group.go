package types

import (
	"time"

	"github.com/google/uuid"
)

// Group is a curated, ordered collection of hotels shown as a homepage
// section. Membership order is persisted per row in group_hotels.
type Group struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	IsPublished bool        `json:"is_published"`
	HotelIDs    []uuid.UUID `json:"hotel_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// GroupWithHotels is the denormalized read model for homepage sections:
// the group plus its member hotels flattened to display cards, sorted by
// the persisted order index.
type GroupWithHotels struct {
	ID     uuid.UUID   `json:"id"`
	Title  string      `json:"title"`
	Hotels []HotelCard `json:"hotels"`
}

type CreateGroupParams struct {
	Title       string      `json:"title"`
	IsPublished bool        `json:"is_published"`
	HotelIDs    []uuid.UUID `json:"hotel_ids,omitempty"`
}

type UpdateGroupParams struct {
	Title       *string `json:"title,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}
