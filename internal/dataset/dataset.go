package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/dashseed/internal/types"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed placeholder.yaml
var placeholderYAML []byte

// invoiceNamespace scopes the name-based UUIDs generated for invoices
// that arrive without an id.
var invoiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Lumos-Labs-HQ/dashseed/invoices"))

// Default returns the embedded placeholder dataset.
func Default() (*types.Dataset, error) {
	ds, err := Parse(placeholderYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded dataset: %w", err)
	}
	return ds, nil
}

// Load reads a YAML dataset from path.
func Load(path string) (*types.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// Resolve loads path when one is given and falls back to the embedded data.
func Resolve(path string) (*types.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes a YAML dataset and fills in missing invoice ids.
// Unknown keys are rejected so a typo does not silently drop a column.
func Parse(data []byte) (*types.Dataset, error) {
	var ds types.Dataset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, err
	}

	for i := range ds.Invoices {
		if ds.Invoices[i].ID == "" {
			ds.Invoices[i].ID = InvoiceID(ds.Invoices[i])
		}
	}

	return &ds, nil
}

// InvoiceID derives a stable id from the invoice contents, so the same
// invoice maps to the same primary key on every run. Two identical rows
// in one dataset collapse into one.
func InvoiceID(inv types.Invoice) string {
	name := strings.Join([]string{
		inv.CustomerID,
		strconv.FormatInt(inv.Amount, 10),
		inv.Status,
		inv.Date,
	}, "|")
	return uuid.NewSHA1(invoiceNamespace, []byte(name)).String()
}
