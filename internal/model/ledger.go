package model

// LedgerEntry is the per-case, per-UPC quantity count. The row is removed
// when the quantity reaches zero; Qty never goes negative.
type LedgerEntry struct {
	BaseModel
	CaseCode string `gorm:"type:varchar(50);not null;uniqueIndex:idx_ledger_case_upc;index" json:"case_code"`
	UPC      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_ledger_case_upc;index" json:"upc"`
	Qty      int    `gorm:"not null" json:"qty"`
}

// CaseItem is a ledger row joined with its product metadata, as shown on
// the case detail page and in exports.
type CaseItem struct {
	UPC         string   `json:"upc"`
	Qty         int      `json:"qty"`
	ItemType    ItemType `json:"item_type"`
	Description string   `json:"description"`
}

// TypeTotals are live per-category quantity totals for a single case.
// Unknown counts units whose UPC has no item type recorded yet.
type TypeTotals struct {
	Earrings  int `json:"earrings"`
	Rings     int `json:"rings"`
	Necklaces int `json:"necklaces"`
	Bracelets int `json:"bracelets"`
	Unknown   int `json:"unknown"`
	Total     int `json:"total"`
}
