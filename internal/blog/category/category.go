package category

import "time"

// Category is a node of the blog category hierarchy.
//
// Categories form an adjacency-list tree: ParentID references another
// category, or is nil for root-level entries. Children and ParentTitle are
// assembled read-side and never persisted.
type Category struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description *string     `json:"description"`
	ParentID    *int        `json:"parent_id"`
	ParentTitle *string     `json:"parent_title,omitempty"`
	Children    []*Category `json:"children,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TreeID implements tree.Node.
func (c *Category) TreeID() int { return c.ID }

// TreeParentID implements tree.Node.
func (c *Category) TreeParentID() *int { return c.ParentID }

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldParentID    = "parent_id"
)
