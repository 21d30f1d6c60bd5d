package model

// Reserved code for the virtual staging case that all receipts land in.
const (
	NewReceiptsCode = "NEW-RECEIPTS"
	NewReceiptsName = "New Receipts (Virtual)"
)

// Case is a physical storage bin (numbered "01".."30" style) or the
// virtual New Receipts staging area.
type Case struct {
	BaseModel
	Code      string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name      string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	IsVirtual bool   `gorm:"default:false" json:"is_virtual"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}

// CaseSummary is a Case plus the inventory rollups shown on the case grid.
type CaseSummary struct {
	Case
	TotalQty     int64 `gorm:"column:total_qty" json:"total_qty"`
	DistinctUPCs int64 `gorm:"column:distinct_upcs" json:"distinct_upcs"`
}
