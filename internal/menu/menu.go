package menu

const (
	FieldName        = "name"
	FieldURL         = "url"
	FieldIndexNumber = "index_number"
)

// Menu is a site navigation entry. Entries nest one level or more deep via
// ParentID and are ordered by IndexNumber within their parent.
type Menu struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	IndexNumber int    `json:"index_number"`
	ParentID    *int   `json:"parent_id"`
	IsHide      bool   `json:"is_hide"`
	IsDeleted   bool   `json:"is_deleted"`

	Children []*Menu `json:"children,omitempty"`
}

func (m *Menu) TreeID() int        { return m.ID }
func (m *Menu) TreeParentID() *int { return m.ParentID }
