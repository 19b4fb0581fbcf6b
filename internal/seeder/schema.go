package seeder

import "github.com/Lumos-Labs-HQ/dashseed/internal/types"

var UsersTable = types.SchemaTable{
	Name: "users",
	Columns: []types.SchemaColumn{
		{Name: "id", Type: "TEXT", IsPrimary: true},
		{Name: "name", Type: "TEXT"},
		{Name: "email", Type: "TEXT", IsUnique: true},
		{Name: "password", Type: "TEXT"},
	},
}

var CustomersTable = types.SchemaTable{
	Name: "customers",
	Columns: []types.SchemaColumn{
		{Name: "id", Type: "TEXT", IsPrimary: true},
		{Name: "name", Type: "TEXT"},
		{Name: "email", Type: "TEXT"},
		{Name: "image_url", Type: "TEXT"},
	},
}

// InvoicesTable uses a caller-supplied text id. customer_id points at
// customers.id but carries no foreign key constraint.
var InvoicesTable = types.SchemaTable{
	Name: "invoices",
	Columns: []types.SchemaColumn{
		{Name: "id", Type: "TEXT", IsPrimary: true},
		{Name: "customer_id", Type: "TEXT"},
		{Name: "amount", Type: "INTEGER"},
		{Name: "status", Type: "TEXT"},
		{Name: "date", Type: "TEXT"},
	},
	Dependencies: []string{"customers"},
}

var RevenueTable = types.SchemaTable{
	Name: "revenue",
	Columns: []types.SchemaColumn{
		{Name: "month", Type: "TEXT", IsPrimary: true},
		{Name: "revenue", Type: "INTEGER"},
	},
}

// Tables returns the seeded tables in declaration order.
func Tables() []types.SchemaTable {
	return []types.SchemaTable{UsersTable, CustomersTable, InvoicesTable, RevenueTable}
}
