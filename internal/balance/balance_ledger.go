package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "github.com/prakhar-sonii/employee-management-system/internal/balance/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger reads and adjusts the per-employee leave balances kept on the
// employees table.
//
//go:generate mockgen -source=balance_ledger.go -destination=mock/balance_ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	Get(ctx context.Context, employeeID uuid.UUID) (Balance, error)
	// Decrement subtracts days from one balance in a single arithmetic
	// UPDATE and records the movement. It never refuses an over-draw.
	Decrement(ctx context.Context, employeeID uuid.UUID, leaveType LeaveType, days int, sourceID uuid.UUID) error
	History(ctx context.Context, employeeID uuid.UUID) ([]Entry, error)
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{db: connection.BindTx(l.db, tx)}
}

func (l *ledger) Get(ctx context.Context, employeeID uuid.UUID) (Balance, error) {
	var b Balance
	err := l.db.WithContext(ctx).
		Table("employees").
		Select("casual_balance, sick_balance, annual_balance").
		Where("id = ?", employeeID).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Balance{}, balanceerrors.ErrEmployeeNotFound
	}
	return b, err
}

func (l *ledger) Decrement(ctx context.Context, employeeID uuid.UUID, leaveType LeaveType, days int, sourceID uuid.UUID) error {
	col, ok := columns[leaveType]
	if !ok {
		return balanceerrors.ErrUnknownLeaveType
	}
	if days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	res := l.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		UpdateColumn(col, gorm.Expr(col+" - ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return balanceerrors.ErrEmployeeNotFound
	}

	src := sourceID
	return l.db.WithContext(ctx).Create(&Entry{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Delta:      -days,
		SourceID:   &src,
	}).Error
}

func (l *ledger) History(ctx context.Context, employeeID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := l.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
