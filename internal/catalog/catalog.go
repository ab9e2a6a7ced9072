// Package catalog provides the local medicine lookup table.
//
// The catalog is loaded once at startup from a JSON file and is read-only
// for the process lifetime. Records carry no uniqueness constraint; lookups
// return the first match in load order.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Record describes one medicine entry. All fields are optional.
type Record struct {
	Brand    string `json:"brand,omitempty"`    // Trade name, e.g. "Dolo 650"
	Generic  string `json:"generic,omitempty"`  // Generic name, e.g. "Paracetamol"
	Strength string `json:"strength,omitempty"` // Dosage strength, e.g. "650 mg"
	Uses     string `json:"uses,omitempty"`     // What the medicine treats
	Warnings string `json:"warnings,omitempty"` // Cautions to narrate
	Barcode  string `json:"barcode,omitempty"`  // Exact product code, if known
}

// DisplayName returns the brand name, falling back to the generic name,
// falling back to "Medicine".
func (r *Record) DisplayName() string {
	if r.Brand != "" {
		return r.Brand
	}
	if r.Generic != "" {
		return r.Generic
	}
	return "Medicine"
}

// haystack returns the lowercased searchable text for name lookups:
// brand, generic name, and strength joined by single spaces.
func (r *Record) haystack() string {
	return strings.ToLower(strings.Join([]string{r.Brand, r.Generic, r.Strength}, " "))
}

// Catalog is an ordered, immutable collection of medicine records.
type Catalog struct {
	records []Record
}

// New creates a catalog from a fixed set of records.
func New(records []Record) *Catalog {
	return &Catalog{records: records}
}

// Load reads a catalog from a JSON file containing an array of records.
// A missing file yields an empty catalog, not an error. A file that exists
// but cannot be parsed is an error; callers treat that as fatal at startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("cannot read catalog: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cannot parse catalog %s: %w", path, err)
	}

	return &Catalog{records: records}, nil
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns the underlying records in load order.
// The returned slice is shared; callers must not modify it.
func (c *Catalog) Records() []Record {
	return c.records
}

// FindByName returns the first record (in load order) whose brand, generic
// name, or strength contains any whitespace-delimited token of text as a
// substring, compared case-insensitively. Returns nil if nothing matches.
//
// The match is deliberately permissive: a single short token can match many
// records, and no ranking beyond load order is applied.
func (c *Catalog) FindByName(text string) *Record {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}

	for i := range c.records {
		hay := c.records[i].haystack()
		for _, tok := range tokens {
			if strings.Contains(hay, tok) {
				return &c.records[i]
			}
		}
	}
	return nil
}

// FindByBarcode returns the first record whose barcode field exactly equals
// code, or nil if none does. An empty code never matches: records without a
// barcode store the empty string, which means "unset" rather than a value.
func (c *Catalog) FindByBarcode(code string) *Record {
	if code == "" {
		return nil
	}
	for i := range c.records {
		if c.records[i].Barcode == code {
			return &c.records[i]
		}
	}
	return nil
}
