package author

import "time"

// Resource is the name used in user-facing messages about authors.
const Resource = "Romancista"

// Author is a novelist ("romancista") in the catalog.
//
// Name is always stored in its sanitized form and is unique.
type Author struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Input is the body accepted by create and update.
type Input struct {
	Name string `json:"name" validate:"required"`
}

// Filter holds the parameters for an author search.
type Filter struct {
	// Name is matched as a case-insensitive substring of the stored name.
	Name string
}

// ListResponse is the body returned by the list endpoint.
type ListResponse struct {
	Romancistas []*Author `json:"romancistas"`
}

// Global field names for validation
const (
	FieldName = "name"
)
