package types

// SuggestionType tags a search suggestion by its source collection.
type SuggestionType string

const (
	SuggestionHotel    SuggestionType = "hotel"
	SuggestionLocation SuggestionType = "location"
	SuggestionTag      SuggestionType = "tag"
)

// Suggestion is one typed autocomplete entry. Value is what a selection
// submits (hotel name, location string, or tag slug); Label is what the
// dropdown displays; Icon is only set for tag suggestions.
type Suggestion struct {
	Type  SuggestionType `json:"type"`
	Value string         `json:"value"`
	Label string         `json:"label"`
	Icon  string         `json:"icon,omitempty"`
}

// HotelRef is the suggestion engine's reference projection of a hotel.
type HotelRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// TagRef is the suggestion engine's reference projection of a tag.
type TagRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}
