package database

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/dashseed/internal/types"
	"github.com/Masterminds/squirrel"
)

// Dialect renders the statements the seeder needs for one SQL engine.
type Dialect interface {
	Name() string
	CreateTableSQL(table types.SchemaTable) string
	// InsertOrSkipSQL builds an insert of one row that is skipped when the
	// primary key already exists. Other constraint violations still fail.
	InsertOrSkipSQL(table types.SchemaTable, values []interface{}) (string, []interface{}, error)
	CountRowsSQL(tableName string) (string, []interface{}, error)
	TableExistsSQL(tableName string) (string, []interface{}, error)
}

// DialectFor returns the dialect for a provider name or alias.
func DialectFor(provider string) (Dialect, error) {
	name, err := NormalizeProvider(provider)
	if err != nil {
		return nil, err
	}
	switch name {
	case "postgres":
		return &postgresDialect{qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case "mysql":
		return &mysqlDialect{qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return &sqliteDialect{qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	}
}

func checkRow(table types.SchemaTable, values []interface{}) error {
	if len(values) != len(table.Columns) {
		return fmt.Errorf("table %s has %d columns, got %d values", table.Name, len(table.Columns), len(values))
	}
	if table.PrimaryKey() == "" {
		return fmt.Errorf("table %s has no primary key", table.Name)
	}
	return nil
}

func quoteAll(names []string, quote func(string) string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quote(n)
	}
	return out
}

// formatColumn renders the column constraints shared by every dialect.
func formatColumn(columnType string, column types.SchemaColumn) string {
	parts := []string{columnType}

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	}
	if column.IsUnique && !column.IsPrimary {
		parts = append(parts, "UNIQUE")
	}
	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	return strings.Join(parts, " ")
}

func createTable(table types.SchemaTable, quote func(string) string, columnType func(types.SchemaColumn) string, trailer string) string {
	lines := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", quote(table.Name))}

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  %s %s%s", quote(column.Name), formatColumn(columnType(column), column), comma))
	}

	lines = append(lines, ")"+trailer)
	return strings.Join(lines, "\n")
}

type sqliteDialect struct {
	qb squirrel.StatementBuilderType
}

func (d *sqliteDialect) Name() string { return "sqlite" }

func (d *sqliteDialect) quote(name string) string { return `"` + name + `"` }

func (d *sqliteDialect) CreateTableSQL(table types.SchemaTable) string {
	return createTable(table, d.quote, func(c types.SchemaColumn) string { return strings.ToUpper(c.Type) }, ";")
}

// SQLite's INSERT OR IGNORE also swallows UNIQUE and NOT NULL failures, so
// the conflict target is spelled out.
func (d *sqliteDialect) InsertOrSkipSQL(table types.SchemaTable, values []interface{}) (string, []interface{}, error) {
	if err := checkRow(table, values); err != nil {
		return "", nil, err
	}
	return d.qb.Insert(d.quote(table.Name)).
		Columns(quoteAll(table.ColumnNames(), d.quote)...).
		Values(values...).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", d.quote(table.PrimaryKey()))).
		ToSql()
}

func (d *sqliteDialect) CountRowsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From(d.quote(tableName)).ToSql()
}

func (d *sqliteDialect) TableExistsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From("sqlite_master").
		Where(squirrel.Eq{"type": "table", "name": tableName}).
		ToSql()
}

type postgresDialect struct {
	qb squirrel.StatementBuilderType
}

func (d *postgresDialect) Name() string { return "postgres" }

func (d *postgresDialect) quote(name string) string { return `"` + name + `"` }

func (d *postgresDialect) CreateTableSQL(table types.SchemaTable) string {
	return createTable(table, d.quote, func(c types.SchemaColumn) string {
		if strings.EqualFold(c.Type, "INTEGER") {
			return "BIGINT"
		}
		return strings.ToUpper(c.Type)
	}, ";")
}

func (d *postgresDialect) InsertOrSkipSQL(table types.SchemaTable, values []interface{}) (string, []interface{}, error) {
	if err := checkRow(table, values); err != nil {
		return "", nil, err
	}
	return d.qb.Insert(d.quote(table.Name)).
		Columns(quoteAll(table.ColumnNames(), d.quote)...).
		Values(values...).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", d.quote(table.PrimaryKey()))).
		ToSql()
}

func (d *postgresDialect) CountRowsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From(d.quote(tableName)).ToSql()
}

func (d *postgresDialect) TableExistsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_name": tableName}).
		ToSql()
}

type mysqlDialect struct {
	qb squirrel.StatementBuilderType
}

func (d *mysqlDialect) Name() string { return "mysql" }

func (d *mysqlDialect) quote(name string) string { return "`" + name + "`" }

func (d *mysqlDialect) CreateTableSQL(table types.SchemaTable) string {
	return createTable(table, d.quote, func(c types.SchemaColumn) string {
		switch {
		case strings.EqualFold(c.Type, "INTEGER"):
			return "BIGINT"
		case c.IsPrimary || c.IsUnique:
			// TEXT cannot be indexed without a prefix length.
			return "VARCHAR(255)"
		default:
			return "TEXT"
		}
	}, " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
}

// MySQL has no primary-key-only conflict clause: INSERT IGNORE and ON
// DUPLICATE KEY both fire on any unique index. The row is instead selected
// from DUAL guarded by a NOT EXISTS probe on the primary key.
func (d *mysqlDialect) InsertOrSkipSQL(table types.SchemaTable, values []interface{}) (string, []interface{}, error) {
	if err := checkRow(table, values); err != nil {
		return "", nil, err
	}

	pk := table.PrimaryKey()
	var pkValue interface{}
	for i, c := range table.Columns {
		if c.Name == pk {
			pkValue = values[i]
		}
	}

	sel := d.qb.Select()
	for _, v := range values {
		sel = sel.Column(squirrel.Expr("?", v))
	}
	sel = sel.From("DUAL").Where(squirrel.Expr(
		fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s WHERE %s = ?)", d.quote(table.Name), d.quote(pk)),
		pkValue,
	))

	return d.qb.Insert(d.quote(table.Name)).
		Columns(quoteAll(table.ColumnNames(), d.quote)...).
		Select(sel).
		ToSql()
}

func (d *mysqlDialect) CountRowsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From(d.quote(tableName)).ToSql()
}

func (d *mysqlDialect) TableExistsSQL(tableName string) (string, []interface{}, error) {
	return d.qb.Select("COUNT(*)").From("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where(squirrel.Eq{"table_name": tableName}).
		ToSql()
}
