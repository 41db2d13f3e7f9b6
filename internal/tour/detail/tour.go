package detail

import (
	"crypto/rand"
	"fmt"
	"time"
)

// DefaultAvatar is assigned when a tour is created without an image.
const DefaultAvatar = "default-image.png"

// Tour is a sellable tour package.
//
// A tour references one main tour category and any number of extra
// categories, destinations and departure points through junction tables.
// Departure dates live in tour.tourdate and are loaded on detail reads.
type Tour struct {
	ID             int         `json:"id"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Description    *string     `json:"description"`
	Promotion      *string     `json:"promotion"`
	Timeline       *string     `json:"timeline"`
	Notes          *string     `json:"notes"`
	Hotel          *string     `json:"hotel"`
	Flight         *string     `json:"flight"`
	CountryFrom    *string     `json:"country_from"`
	CountryTo      *string     `json:"country_to"`
	Price          int64       `json:"price"`
	PromotionPrice *int64      `json:"promotion_price"`
	ChildPrice     *int64      `json:"child_price"`
	Avatar         string      `json:"avatar"`
	IsHot          bool        `json:"is_hot"`
	IsHide         bool        `json:"is_hide"`
	IsDeleted      bool        `json:"is_deleted"`
	MainCategoryID *int        `json:"main_category_id"`
	CategoryIDs    []int       `json:"category_ids"`
	DestinationIDs []int       `json:"destination_ids"`
	DepartureIDs   []int       `json:"departure_ids"`
	Dates          []time.Time `json:"dates,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CreatorName    *string     `json:"creator_name"`
}

// Filter holds the parameters for an administrative tour search.
type Filter struct {
	IsHot       *bool
	IsHide      *bool
	CategoryIDs []int
}

// PublicFilter holds the parameters of the public catalog search under a
// category landing page.
type PublicFilter struct {
	DestinationID *int
	DepartureID   *int
	MinPrice      *int64
	MaxPrice      *int64
	// Month narrows to tours with a departure date in the given month (1-12).
	Month *int
	// Sort is one of "price_asc", "price_desc" or "newest" (default).
	Sort string
}

// Global field names for validation
const (
	FieldName           = "name"
	FieldSlug           = "slug"
	FieldCode           = "code"
	FieldPrice          = "price"
	FieldMainCategoryID = "main_category_id"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode builds the public tour code "TOUR-XXXXXX-{id}" where X is a
// random character from [codeAlphabet]. The trailing ID keeps codes unique
// even on the off chance the random part collides.
func GenerateCode(id int) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("TOUR-%s-%d", buf, id)
}
