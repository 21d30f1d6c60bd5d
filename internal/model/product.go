package model

// ItemType is the jewelry category assigned to a UPC at first receipt.
type ItemType string

const (
	ItemEarring  ItemType = "Earring"
	ItemRing     ItemType = "Ring"
	ItemNecklace ItemType = "Necklace"
	ItemBracelet ItemType = "Bracelet"
)

// ItemTypes in the order they show up on the receive form.
var ItemTypes = []ItemType{ItemEarring, ItemRing, ItemNecklace, ItemBracelet}

// Valid reports whether t is one of the enumerated categories.
func (t ItemType) Valid() bool {
	switch t {
	case ItemEarring, ItemRing, ItemNecklace, ItemBracelet:
		return true
	}
	return false
}

// Short returns the single-letter item code used on activity reports.
func (t ItemType) Short() string {
	switch t {
	case ItemEarring:
		return "E"
	case ItemRing:
		return "R"
	case ItemNecklace:
		return "N"
	case ItemBracelet:
		return "B"
	}
	return "O"
}

// Product maps a UPC to its category and description. A UPC is not unique
// per physical unit; quantities live in LedgerEntry.
//
// ItemType and Description follow a fill-once rule: blank may be set on a
// later receipt, non-blank is never overwritten.
type Product struct {
	BaseModel
	UPC         string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"upc" validate:"required"`
	ItemType    ItemType `gorm:"type:varchar(20)" json:"item_type"`
	Description string   `gorm:"type:varchar(255)" json:"description"`
}
