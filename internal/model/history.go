package model

type ActionType string

const (
	ActionReceive     ActionType = "RECEIVE"
	ActionMove        ActionType = "MOVE"
	ActionSold        ActionType = "SOLD"
	ActionMissing     ActionType = "MISSING"
	ActionCaseCreate  ActionType = "CASE_CREATE"
	ActionCaseEdit    ActionType = "CASE_EDIT"
	ActionCaseDelete  ActionType = "CASE_DELETE"
	ActionUserCreate  ActionType = "USER_CREATE"
	ActionUserDisable ActionType = "USER_DISABLE"
)

// DiamondTestOptions are the accepted values for the SOLD diamond test
// field: yes, no, or "not required to test".
var DiamondTestOptions = map[string]bool{"Y": true, "N": true, "NRT": true}

// HistoryRecord is an append-only record of an inventory-affecting action.
// Rows are never updated or deleted.
type HistoryRecord struct {
	BaseModel
	Username     string     `gorm:"type:varchar(255)" json:"username"`
	Action       ActionType `gorm:"type:varchar(20);not null;index" json:"action"`
	UPC          string     `gorm:"type:varchar(50);index" json:"upc,omitempty"`
	Qty          int        `json:"qty,omitempty"`
	FromCaseCode string     `gorm:"type:varchar(50);index" json:"from_case_code,omitempty"`
	ToCaseCode   string     `gorm:"type:varchar(50);index" json:"to_case_code,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`

	// SOLD paperwork, blank for every other action
	TransReg    string  `gorm:"type:varchar(50)" json:"trans_reg,omitempty"`
	DeptNo      string  `gorm:"type:varchar(50)" json:"dept_no,omitempty"`
	BriefDesc   string  `gorm:"type:varchar(255)" json:"brief_desc,omitempty"`
	TicketPrice float64 `json:"ticket_price,omitempty"`
	DiamondTest string  `gorm:"type:varchar(5)" json:"diamond_test,omitempty"`

	// Denormalized from Product at read time for list/export views
	ItemType ItemType `gorm:"->;-:migration" json:"item_type,omitempty"`
}
