package schema

// LivrosTable represents the 'livros' table
type LivrosTable struct {
	Table        string
	ID           string
	Title        string
	Year         string
	RomancistaID string
	CreatedAt    string
	UpdatedAt    string
}

// Livros is the schema definition for livros
var Livros = LivrosTable{
	Table:        "livros",
	ID:           "id",
	Title:        "title",
	Year:         "year",
	RomancistaID: "romancista_id",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t LivrosTable) Columns() []string {
	return []string{t.ID, t.Title, t.Year, t.RomancistaID, t.CreatedAt, t.UpdatedAt}
}
