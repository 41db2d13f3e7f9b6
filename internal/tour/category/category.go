package category

import "time"

// DefaultAvatar is assigned when a category is created without an image.
const DefaultAvatar = "default-image.png"

// Category is a node of the tour category hierarchy.
//
// Unlike blog categories, tour categories are soft-deleted: flagged rows keep
// their slug and position but disappear from every active read path. Children
// and ParentName are assembled read-side and never persisted.
type Category struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Topic         *string     `json:"topic"`
	Slug          string      `json:"slug"`
	Description   *string     `json:"description"`
	ContentIntro  *string     `json:"content_intro"`
	ContentDetail *string     `json:"content_detail"`
	Avatar        string      `json:"avatar"`
	MetaTitle     *string     `json:"meta_title"`
	MetaDesc      *string     `json:"meta_description"`
	MetaKeywords  *string     `json:"meta_keywords"`
	IsIndexRobot  bool        `json:"is_index_robot"`
	IsDeleted     bool        `json:"is_deleted"`
	ParentID      *int        `json:"parent_id"`
	ParentName    *string     `json:"parent_name,omitempty"`
	Children      []*Category `json:"children,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	CreatorName   *string     `json:"creator_name"`
	EditorName    *string     `json:"editor_name"`
}

// TreeID implements tree.Node.
func (c *Category) TreeID() int { return c.ID }

// TreeParentID implements tree.Node.
func (c *Category) TreeParentID() *int { return c.ParentID }

// Global field names for validation
const (
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldTopic    = "topic"
	FieldParentID = "parent_id"
)
