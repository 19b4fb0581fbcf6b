package types

type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"` // plaintext; hashed before insertion
}

type Customer struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

type Invoice struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	CustomerID string `json:"customer_id" yaml:"customer_id"`
	Amount     int64  `json:"amount" yaml:"amount"` // minor currency unit
	Status     string `json:"status" yaml:"status"`
	Date       string `json:"date" yaml:"date"`
}

const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

type Revenue struct {
	Month   string `json:"month" yaml:"month"`
	Revenue int64  `json:"revenue" yaml:"revenue"`
}

// Dataset bundles the four collections the seeder writes.
type Dataset struct {
	Users     []User     `json:"users" yaml:"users"`
	Customers []Customer `json:"customers" yaml:"customers"`
	Invoices  []Invoice  `json:"invoices" yaml:"invoices"`
	Revenue   []Revenue  `json:"revenue" yaml:"revenue"`
}

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
	// Dependencies lists tables whose rows this table refers to. They are
	// used for ordering only; no foreign key constraint is emitted.
	Dependencies []string
}

type SchemaColumn struct {
	Name      string
	Type      string // TEXT or INTEGER; dialects map it
	Nullable  bool
	IsPrimary bool
	IsUnique  bool
}

// PrimaryKey returns the name of the primary key column, or "" if none.
func (t SchemaTable) PrimaryKey() string {
	for _, c := range t.Columns {
		if c.IsPrimary {
			return c.Name
		}
	}
	return ""
}

func (t SchemaTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}
