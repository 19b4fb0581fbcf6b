package seeder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/dashseed/internal/database"
	"github.com/Lumos-Labs-HQ/dashseed/internal/types"
	"github.com/fatih/color"
)

var (
	infoColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
)

type Seeder struct {
	db      DB
	dialect database.Dialect
	opts    Options
	graph   *DependencyGraph
}

func New(db DB, dialect database.Dialect, opts Options) *Seeder {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = DefaultBcryptCost
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	graph := NewDependencyGraph()
	for _, table := range Tables() {
		graph.AddTable(table)
	}

	return &Seeder{
		db:      db,
		dialect: dialect,
		opts:    opts,
		graph:   graph,
	}
}

// Order returns the sequence in which Seed visits the tables.
func (s *Seeder) Order() ([]string, error) {
	return s.graph.BuildInsertionOrder()
}

// Seed creates every table and inserts the dataset, one table at a time.
// The first failing table stops the run; later tables are not touched.
func (s *Seeder) Seed(ctx context.Context, ds *types.Dataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}

	order, err := s.Order()
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}

	steps := map[string]func(context.Context) error{
		UsersTable.Name:     func(ctx context.Context) error { return s.SeedUsers(ctx, ds.Users) },
		CustomersTable.Name: func(ctx context.Context) error { return s.SeedCustomers(ctx, ds.Customers) },
		InvoicesTable.Name:  func(ctx context.Context) error { return s.SeedInvoices(ctx, ds.Invoices) },
		RevenueTable.Name:   func(ctx context.Context) error { return s.SeedRevenue(ctx, ds.Revenue) },
	}

	infoColor.Fprintf(s.opts.Out, "🌱 Seeding %s database: %s\n", s.dialect.Name(), strings.Join(order, " → "))

	for _, name := range order {
		step, ok := steps[name]
		if !ok {
			return fmt.Errorf("no seed step for table %s", name)
		}
		if err := step(ctx); err != nil {
			return err
		}
	}

	okColor.Fprintln(s.opts.Out, "✅ Database seeding completed successfully!")
	return nil
}

func (s *Seeder) SeedUsers(ctx context.Context, users []types.User) error {
	err := s.seedTable(ctx, UsersTable, len(users), func(i int) (string, []interface{}, error) {
		u := users[i]
		hashed, err := HashPassword(u.Password, s.opts.BcryptCost)
		if err != nil {
			return u.ID, nil, &StepError{Table: UsersTable.Name, Stage: StageHash, Key: u.ID, Err: err}
		}
		return u.ID, []interface{}{u.ID, u.Name, u.Email, hashed}, nil
	})
	return s.report(UsersTable.Name, err)
}

func (s *Seeder) SeedCustomers(ctx context.Context, customers []types.Customer) error {
	err := s.seedTable(ctx, CustomersTable, len(customers), func(i int) (string, []interface{}, error) {
		c := customers[i]
		return c.ID, []interface{}{c.ID, c.Name, c.Email, c.ImageURL}, nil
	})
	return s.report(CustomersTable.Name, err)
}

func (s *Seeder) SeedInvoices(ctx context.Context, invoices []types.Invoice) error {
	err := s.seedTable(ctx, InvoicesTable, len(invoices), func(i int) (string, []interface{}, error) {
		inv := invoices[i]
		return inv.ID, []interface{}{inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date}, nil
	})
	return s.report(InvoicesTable.Name, err)
}

func (s *Seeder) SeedRevenue(ctx context.Context, revenue []types.Revenue) error {
	err := s.seedTable(ctx, RevenueTable, len(revenue), func(i int) (string, []interface{}, error) {
		r := revenue[i]
		return r.Month, []interface{}{r.Month, r.Revenue}, nil
	})
	return s.report(RevenueTable.Name, err)
}

// report writes the single diagnostic line for a failed table and hands
// the error back unchanged.
func (s *Seeder) report(table string, err error) error {
	if err == nil {
		return nil
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.Constraint() != "" {
		errorColor.Fprintf(s.opts.ErrOut, "❌ Error seeding %s (%s constraint): %v\n", table, stepErr.Constraint(), err)
	} else {
		errorColor.Fprintf(s.opts.ErrOut, "❌ Error seeding %s: %v\n", table, err)
	}
	return err
}

type rowFunc func(i int) (key string, values []interface{}, err error)

// seedTable creates the table if needed, then inserts n rows in one
// transaction, skipping rows whose primary key is already present.
func (s *Seeder) seedTable(ctx context.Context, table types.SchemaTable, n int, row rowFunc) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTableSQL(table)); err != nil {
		return &StepError{Table: table.Name, Stage: StageCreate, Err: err}
	}
	infoColor.Fprintf(s.opts.Out, "  📝 Created %q table\n", table.Name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StepError{Table: table.Name, Stage: StageInsert, Err: fmt.Errorf("begin transaction: %w", err)}
	}

	inserted := 0
	for i := 0; i < n; i++ {
		key, values, err := row(i)
		if err != nil {
			_ = tx.Rollback()
			return err
		}

		query, args, err := s.dialect.InsertOrSkipSQL(table, values)
		if err != nil {
			_ = tx.Rollback()
			return &StepError{Table: table.Name, Stage: StageInsert, Key: key, Err: err}
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			_ = tx.Rollback()
			return &StepError{Table: table.Name, Stage: StageInsert, Key: key, Err: err}
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return &StepError{Table: table.Name, Stage: StageCommit, Err: err}
	}

	okColor.Fprintf(s.opts.Out, "  ✅ Seeded %s (%d inserted, %d already present)\n", table.Name, inserted, n-inserted)
	return nil
}

// Counts reports the row count of every seeded table, marking tables that
// do not exist yet.
func (s *Seeder) Counts(ctx context.Context) ([]TableCount, error) {
	order, err := s.Order()
	if err != nil {
		return nil, err
	}

	counts := make([]TableCount, 0, len(order))
	for _, name := range order {
		query, args, err := s.dialect.TableExistsSQL(name)
		if err != nil {
			return nil, err
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", name, err)
		}
		if exists == 0 {
			counts = append(counts, TableCount{Table: name})
			continue
		}

		query, args, err = s.dialect.CountRowsSQL(name)
		if err != nil {
			return nil, err
		}
		var rows int64
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rows); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", name, err)
		}
		counts = append(counts, TableCount{Table: name, Exists: true, Rows: rows})
	}

	return counts, nil
}
