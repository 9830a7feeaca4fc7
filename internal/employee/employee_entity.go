package employee

import (
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee rows are soft deleted so that requests and ledger entries keep
// their owner and reviewer references.
type Employee struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name          string      `gorm:"type:varchar(255);not null"`
	Email         string      `gorm:"type:varchar(255);uniqueIndex:uq_employee_email,where:deleted_at IS NULL;not null"`
	PasswordHash  string      `gorm:"column:password_hash;not null" json:"-"`
	Role          domain.Role `gorm:"type:varchar(20);not null;default:employee"`
	Department    string      `gorm:"type:varchar(100)"`
	CasualBalance int         `gorm:"not null"`
	SickBalance   int         `gorm:"not null"`
	AnnualBalance int         `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}
