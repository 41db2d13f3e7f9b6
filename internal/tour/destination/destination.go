package destination

// Destination is a node of the geographic destination hierarchy
// (e.g. Asia → Vietnam → Ha Long Bay).
type Destination struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	ParentID   *int           `json:"parent_id"`
	ParentName *string        `json:"parent_name,omitempty"`
	Children   []*Destination `json:"children,omitempty"`
}

// TreeID implements tree.Node.
func (d *Destination) TreeID() int { return d.ID }

// TreeParentID implements tree.Node.
func (d *Destination) TreeParentID() *int { return d.ParentID }

// Global field names for validation
const (
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldParentID = "parent_id"
)
