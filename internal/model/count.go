package model

// CaseCount is a physical daily count of one case, by category. Multiple
// counts per case per day are allowed; the latest one wins for reporting.
type CaseCount struct {
	BaseModel
	LocalDate string `gorm:"type:varchar(10);not null;index:idx_counts_date_case" json:"local_date"`
	CaseCode  string `gorm:"type:varchar(50);not null;index:idx_counts_date_case;index" json:"case_code"`
	Username  string `gorm:"type:varchar(255)" json:"username"`

	Earrings  int `gorm:"not null" json:"earrings" validate:"gte=0"`
	Rings     int `gorm:"not null" json:"rings" validate:"gte=0"`
	Necklaces int `gorm:"not null" json:"necklaces" validate:"gte=0"`
	Bracelets int `gorm:"not null" json:"bracelets" validate:"gte=0"`
	Total     int `gorm:"not null" json:"total"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
}

// ComputeTotal sums the category counts into Total.
func (c *CaseCount) ComputeTotal() {
	c.Total = c.Earrings + c.Rings + c.Necklaces + c.Bracelets
}
