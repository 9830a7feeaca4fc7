package reimbursement

import (
	"github.com/prakhar-sonii/employee-management-system/internal/employee"
	"github.com/prakhar-sonii/employee-management-system/internal/workflow"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTravel        Category = "travel"
	CategoryFood          Category = "food"
	CategoryAccommodation Category = "accommodation"
	CategoryEquipment     Category = "equipment"
	CategoryMedical       Category = "medical"
	CategoryOther         Category = "other"
)

var categories = map[Category]struct{}{
	CategoryTravel:        {},
	CategoryFood:          {},
	CategoryAccommodation: {},
	CategoryEquipment:     {},
	CategoryMedical:       {},
	CategoryOther:         {},
}

func ParseCategory(v string) (Category, bool) {
	c := Category(v)
	_, ok := categories[c]
	return c, ok
}

// Claim is an expense reimbursement request. Approval has no side effect
// beyond the status change.
type Claim struct {
	workflow.Base

	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category    Category        `gorm:"type:varchar(20);not null"`
	Description string          `gorm:"type:text;not null"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
	Reviewer *employee.Employee `gorm:"foreignKey:ReviewedBy"`
}

func (Claim) TableName() string {
	return "reimbursements"
}
