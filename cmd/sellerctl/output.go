package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var nairaPrinter = message.NewPrinter(language.English)

// print writes v as indented JSON with --json, and calls text otherwise
func (c *cli) print(v any, text func()) error {
	if !c.json {
		text()
		return nil
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func (c *cli) pageFooter(page, totalPages, total int) {
	fmt.Fprintf(c.out, "page %d of %d, %d total\n", page, totalPages, total)
}

func formatNaira(amount float64) string {
	return nairaPrinter.Sprintf("₦%.2f", amount)
}
