package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/dashseed/internal/types"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded dataset: %v", err)
	}

	if len(ds.Users) != 1 || len(ds.Customers) != 6 || len(ds.Invoices) != 13 || len(ds.Revenue) != 12 {
		t.Errorf("Unexpected dataset sizes: %d users, %d customers, %d invoices, %d revenue",
			len(ds.Users), len(ds.Customers), len(ds.Invoices), len(ds.Revenue))
	}

	customers := make(map[string]bool)
	for _, c := range ds.Customers {
		customers[c.ID] = true
	}

	ids := make(map[string]bool)
	for _, inv := range ds.Invoices {
		if inv.ID == "" {
			t.Errorf("Invoice for %s has no id", inv.CustomerID)
		}
		if ids[inv.ID] {
			t.Errorf("Duplicate invoice id %s", inv.ID)
		}
		ids[inv.ID] = true
		if !customers[inv.CustomerID] {
			t.Errorf("Invoice %s references unknown customer %s", inv.ID, inv.CustomerID)
		}
		if inv.Status != types.InvoicePending && inv.Status != types.InvoicePaid {
			t.Errorf("Invoice %s has unexpected status '%s'", inv.ID, inv.Status)
		}
	}
}

func TestInvoiceIDIsStable(t *testing.T) {
	inv := types.Invoice{CustomerID: "c1", Amount: 15795, Status: "pending", Date: "2022-12-06"}

	first := InvoiceID(inv)
	if first != InvoiceID(inv) {
		t.Error("Expected the same invoice to derive the same id")
	}

	inv.Amount++
	if first == InvoiceID(inv) {
		t.Error("Expected a different amount to derive a different id")
	}
}

func TestParseKeepsSuppliedInvoiceID(t *testing.T) {
	ds, err := Parse([]byte(`
invoices:
  - {id: inv-1, customer_id: c1, amount: 10, status: paid, date: "2023-01-01"}
  - {customer_id: c1, amount: 10, status: paid, date: "2023-01-01"}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if ds.Invoices[0].ID != "inv-1" {
		t.Errorf("Expected supplied id 'inv-1', got '%s'", ds.Invoices[0].ID)
	}
	if ds.Invoices[1].ID != InvoiceID(ds.Invoices[1]) {
		t.Errorf("Expected derived id, got '%s'", ds.Invoices[1].ID)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("customers:\n  - {id: c1, name: A, email: a@b.c, imageurl: x}\n")); err == nil {
		t.Error("Expected an error for an unknown field")
	}
}

func TestResolve(t *testing.T) {
	ds, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve with no path failed: %v", err)
	}
	if len(ds.Customers) != 6 {
		t.Errorf("Expected embedded dataset, got %d customers", len(ds.Customers))
	}

	path := filepath.Join(t.TempDir(), "data.yaml")
	content := "revenue:\n  - {month: \"2023-01\", revenue: 1000}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	ds, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve with path failed: %v", err)
	}
	if len(ds.Revenue) != 1 || ds.Revenue[0].Month != "2023-01" || ds.Revenue[0].Revenue != 1000 {
		t.Errorf("Unexpected revenue: %+v", ds.Revenue)
	}
	if len(ds.Users) != 0 {
		t.Errorf("Expected no users, got %d", len(ds.Users))
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
