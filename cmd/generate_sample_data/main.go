package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Generates sample upload files whose headers exercise the auto-matcher:
// exact field names, synonyms, and a couple of reserved/unmappable
// columns. Writes both CSV and XLSX variants.

var headers = []string{
	"id", "First Name", "Surname", "E-Mail Address", "Telephone",
	"Organisation", "City", "Postal Code", "Comments", "created_at",
}

var rows = [][]string{
	{"1", "Ada", "Lovelace", "ada@example.com", "555-0101", "Analytical Engines Ltd", "London", "EC1A 1BB", "VIP customer", "2024-01-02"},
	{"2", "Grace", "Hopper", "grace@example.com", "555-0102", "Navy Research", "Arlington", "22201", "", "2024-01-03"},
	{"3", "Linus", "Torvalds", "linus@example.com", "555-0103", "Open Source Inc", "Helsinki", "00100", "prefers email", "2024-01-04"},
	{"4", "Margaret", "Hamilton", "margaret@example.com", "555-0104", "Draper Lab", "Cambridge", "02139", "", "2024-01-05"},
}

func main() {
	outDir := "./storage/samples"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := writeCSV(filepath.Join(outDir, "contacts_sample.csv")); err != nil {
		fmt.Printf("Error writing CSV: %v\n", err)
		os.Exit(1)
	}
	if err := writeXLSX(filepath.Join(outDir, "contacts_sample.xlsx")); err != nil {
		fmt.Printf("Error writing XLSX: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample files written to %s\n", outDir)
}

func writeCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for r, row := range rows {
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
