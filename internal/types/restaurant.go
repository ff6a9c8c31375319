package types

import "github.com/google/uuid"

// RestaurantCategory groups nearby restaurants on the hotel detail page,
// display-ordered within the page and carrying its restaurants ordered
// the same way.
type RestaurantCategory struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	DisplayOrder int          `json:"display_order"`
	Restaurants  []Restaurant `json:"restaurants"`
}

type Restaurant struct {
	ID              uuid.UUID        `json:"id"`
	CategoryID      uuid.UUID        `json:"category_id"`
	Location        string           `json:"location"`
	Name            string           `json:"name"`
	ImageURL        string           `json:"image_url"`
	Description     string           `json:"description"`
	GoogleRating    float64          `json:"google_rating"`
	ReviewCount     string           `json:"review_count"`
	OrderSuggestion string           `json:"order_suggestion"`
	DisplayOrder    int              `json:"display_order"`
	Notes           []RestaurantNote `json:"notes"`
}

type RestaurantNote struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Emoji        string    `json:"emoji"`
	Text         string    `json:"text"`
	DisplayOrder int       `json:"display_order"`
}

type CreateRestaurantCategoryParams struct {
	Title        string `json:"title"`
	DisplayOrder int    `json:"display_order"`
}

type CreateRestaurantParams struct {
	CategoryID      uuid.UUID `json:"category_id"`
	Location        string    `json:"location"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"image_url"`
	Description     string    `json:"description"`
	GoogleRating    float64   `json:"google_rating"`
	ReviewCount     string    `json:"review_count"`
	OrderSuggestion string    `json:"order_suggestion"`
	DisplayOrder    int       `json:"display_order"`
}

type CreateRestaurantNoteParams struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Emoji        string    `json:"emoji"`
	Text         string    `json:"text"`
	DisplayOrder int       `json:"display_order"`
}
