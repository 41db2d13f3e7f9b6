package library

// Entity types an image can be attached to.
const (
	EntityTourCategory = "tour_category"
	EntityTourDetail   = "tour_detail"
)

const (
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldImageURL   = "image_url"
)

// Image is a gallery image attached to a tour category or a tour.
type Image struct {
	ID         int    `json:"id"`
	EntityType string `json:"entity_type"`
	EntityID   int    `json:"entity_id"`
	ImageURL   string `json:"image_url"`
}

// ValidEntityType reports whether entityType names an attachable entity.
func ValidEntityType(entityType string) bool {
	return entityType == EntityTourCategory || entityType == EntityTourDetail
}
