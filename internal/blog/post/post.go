package post

import "time"

// Post is a blog article.
//
// A post belongs to at most one main category and any number of extra
// categories through the blog.postcategory junction table.
type Post struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	Slug           string    `json:"slug"`
	Content        *string   `json:"content"`
	Published      bool      `json:"published"`
	MainCategoryID *int      `json:"main_category_id"`
	CategoryIDs    []int     `json:"category_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated post search.
type Filter struct {
	// Published narrows to published or draft posts when set.
	Published *bool
	// CategoryIDs narrows to posts attached (main or extra) to any of the IDs.
	CategoryIDs []int
}

// Global field names for validation
const (
	FieldTitle          = "title"
	FieldSlug           = "slug"
	FieldContent        = "content"
	FieldMainCategoryID = "main_category_id"
	FieldCategoryIDs    = "category_ids"
)
