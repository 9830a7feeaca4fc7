package balance

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType string

const (
	LeaveCasual LeaveType = "casual"
	LeaveSick   LeaveType = "sick"
	LeaveAnnual LeaveType = "annual"
)

// columns is the closed set of employee columns the ledger may touch.
var columns = map[LeaveType]string{
	LeaveCasual: "casual_balance",
	LeaveSick:   "sick_balance",
	LeaveAnnual: "annual_balance",
}

func ParseLeaveType(v string) (LeaveType, bool) {
	t := LeaveType(v)
	_, ok := columns[t]
	return t, ok
}

// Balance holds remaining days per leave type. Values may go negative when
// approvals outrun the advisory check made at apply time.
type Balance struct {
	Casual int `gorm:"column:casual_balance" json:"casual"`
	Sick   int `gorm:"column:sick_balance" json:"sick"`
	Annual int `gorm:"column:annual_balance" json:"annual"`
}

func (b Balance) Of(t LeaveType) int {
	switch t {
	case LeaveCasual:
		return b.Casual
	case LeaveSick:
		return b.Sick
	case LeaveAnnual:
		return b.Annual
	default:
		return 0
	}
}

// Entry is one append-only ledger movement.
type Entry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null"`
	LeaveType  LeaveType  `gorm:"type:varchar(20);not null"`
	Delta      int        `gorm:"not null"`
	SourceID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (Entry) TableName() string {
	return "balance_entries"
}
