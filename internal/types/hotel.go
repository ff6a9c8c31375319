package types

import (
	"time"

	"github.com/google/uuid"
)

// Coordinates is a latitude/longitude pair. A hotel either has both
// values or none; the mapping layer never produces a half-filled pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Hotel is the full domain shape of a curated hotel. Optional text and
// list fields are always non-nil after mapping: absent columns become
// empty strings and empty slices.
type Hotel struct {
	ID                uuid.UUID    `json:"id"`
	Name              string       `json:"name"`
	Location          string       `json:"location"`
	Score             float64      `json:"score"`
	Price             int          `json:"price"`
	About             string       `json:"about"`
	Tags              []string     `json:"tags"`
	Amenities         []string     `json:"amenities"`
	CoverImageURL     string       `json:"cover_image_url"`
	GalleryImages     []string     `json:"gallery_images"`
	AboutFacility     string       `json:"about_facility"`
	Rules             string       `json:"rules"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	VideoURL          string       `json:"video_url"`
	VideoThumbnailURL string       `json:"video_thumbnail_url"`
	WebsiteURL        string       `json:"website_url"`
	InstagramURL      string       `json:"instagram_url"`
	GoogleMapsURL     string       `json:"google_maps_url"`
	HowToGetThere     string       `json:"how_to_get_there"`
	CreatedAt         time.Time    `json:"created_at"`
}

// HotelCard is the narrow projection used by list and grid rendering.
type HotelCard struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Price         int       `json:"price"`
	Score         float64   `json:"score"`
	CoverImageURL string    `json:"cover_image_url"`
}

// CreateHotelParams carries the fields accepted on hotel creation.
// Unset optional fields are persisted as empty values, never NULL,
// so reads after create round-trip exactly.
type CreateHotelParams struct {
	Name              string       `json:"name"`
	Location          string       `json:"location"`
	Score             float64      `json:"score"`
	Price             int          `json:"price"`
	About             string       `json:"about"`
	Tags              []string     `json:"tags"`
	Amenities         []string     `json:"amenities"`
	CoverImageURL     string       `json:"cover_image_url"`
	GalleryImages     []string     `json:"gallery_images"`
	AboutFacility     string       `json:"about_facility"`
	Rules             string       `json:"rules"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	VideoURL          string       `json:"video_url"`
	VideoThumbnailURL string       `json:"video_thumbnail_url"`
	WebsiteURL        string       `json:"website_url"`
	InstagramURL      string       `json:"instagram_url"`
	GoogleMapsURL     string       `json:"google_maps_url"`
	HowToGetThere     string       `json:"how_to_get_there"`
}

// UpdateHotelParams is a sparse update: only non-nil fields reach the
// update payload, so omitted fields stay untouched server-side.
// Coordinates are written or cleared as a pair.
type UpdateHotelParams struct {
	Name              *string      `json:"name,omitempty"`
	Location          *string      `json:"location,omitempty"`
	Score             *float64     `json:"score,omitempty"`
	Price             *int         `json:"price,omitempty"`
	About             *string      `json:"about,omitempty"`
	Tags              *[]string    `json:"tags,omitempty"`
	Amenities         *[]string    `json:"amenities,omitempty"`
	CoverImageURL     *string      `json:"cover_image_url,omitempty"`
	GalleryImages     *[]string    `json:"gallery_images,omitempty"`
	AboutFacility     *string      `json:"about_facility,omitempty"`
	Rules             *string      `json:"rules,omitempty"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	ClearCoordinates  bool         `json:"clear_coordinates,omitempty"`
	VideoURL          *string      `json:"video_url,omitempty"`
	VideoThumbnailURL *string      `json:"video_thumbnail_url,omitempty"`
	WebsiteURL        *string      `json:"website_url,omitempty"`
	InstagramURL      *string      `json:"instagram_url,omitempty"`
	GoogleMapsURL     *string      `json:"google_maps_url,omitempty"`
	HowToGetThere     *string      `json:"how_to_get_there,omitempty"`
}

// HotelFilter combines optional search predicates. Absent filters impose
// no constraint.
type HotelFilter struct {
	SearchTerm *string  `json:"search_term,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	MinPrice   *int     `json:"min_price,omitempty"`
	MaxPrice   *int     `json:"max_price,omitempty"`
	MinScore   *float64 `json:"min_score,omitempty"`
}
