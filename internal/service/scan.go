package service

import (
	"strconv"
	"strings"
)

// ScanEntry is one scanned UPC with its quantity.
type ScanEntry struct {
	UPC string `json:"upc" validate:"required"`
	Qty int    `json:"qty" validate:"required,gt=0"`
}

// ParseScanLines turns raw scanner output into aggregated entries.
//
// Accepts one UPC per line, or "UPC,qty". A bare UPC counts as quantity 1.
// Blank lines, blank UPCs and non-positive quantities are skipped.
func ParseScanLines(text string) []ScanEntry {
	totals := map[string]int{}
	var order []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		upc := line
		qty := 1
		if left, right, found := strings.Cut(line, ","); found {
			upc = strings.TrimSpace(left)
			n, err := strconv.Atoi(strings.TrimSpace(right))
			if err != nil {
				n = 0
			}
			qty = n
		}

		if upc == "" || qty <= 0 {
			continue
		}
		if _, seen := totals[upc]; !seen {
			order = append(order, upc)
		}
		totals[upc] += qty
	}

	entries := make([]ScanEntry, 0, len(order))
	for _, upc := range order {
		entries = append(entries, ScanEntry{UPC: upc, Qty: totals[upc]})
	}
	return entries
}
