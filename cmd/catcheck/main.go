// Command catcheck validates a medicine catalog file and probes lookups
// against it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"sight-assist/internal/catalog"
	"sight-assist/internal/medicine"
)

func main() {
	path := flag.String("catalog", "meds.json", "Path to the medicine catalog")
	name := flag.String("name", "", "Probe a name lookup with this text")
	code := flag.String("barcode", "", "Probe a barcode lookup with this code")
	flag.Parse()

	cat, err := catalog.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d records from %s\n\n", cat.Len(), *path)
	fmt.Printf("%-20s %-20s %-10s %-15s\n", "Brand", "Generic", "Strength", "Barcode")
	fmt.Println(strings.Repeat("-", 67))
	for _, r := range cat.Records() {
		fmt.Printf("%-20s %-20s %-10s %-15s\n", r.Brand, r.Generic, r.Strength, r.Barcode)
	}

	if *name != "" {
		if rec := cat.FindByName(*name); rec != nil {
			fmt.Printf("\nName %q -> %s\n", *name, medicine.Summarize(rec))
		} else {
			fmt.Printf("\nName %q -> no match\n", *name)
		}
	}

	if *code != "" {
		if rec := cat.FindByBarcode(*code); rec != nil {
			fmt.Printf("\nBarcode %q -> %s\n", *code, medicine.Summarize(rec))
		} else {
			fmt.Printf("\nBarcode %q -> no match\n", *code)
		}
	}
}
