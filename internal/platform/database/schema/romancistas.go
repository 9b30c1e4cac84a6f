package schema

// RomancistasTable represents the 'romancistas' table
type RomancistasTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// Romancistas is the schema definition for romancistas
var Romancistas = RomancistasTable{
	Table:     "romancistas",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t RomancistasTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt, t.UpdatedAt}
}
