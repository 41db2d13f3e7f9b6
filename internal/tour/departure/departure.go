package departure

// Departure is a city or station tours leave from.
type Departure struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Global field names for validation
const (
	FieldName = "name"
)
