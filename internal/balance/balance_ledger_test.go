package balance_test

import (
	"context"
	"testing"

	"github.com/prakhar-sonii/employee-management-system/internal/balance"
	balanceerrors "github.com/prakhar-sonii/employee-management-system/internal/balance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLedger(t *testing.T) (balance.Ledger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return balance.NewLedger(gdb), mock
}

func TestLedger_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		ledger, mock := setupLedger(t)
		mock.ExpectQuery(`SELECT casual_balance, sick_balance, annual_balance FROM "employees"`).
			WillReturnRows(sqlmock.NewRows([]string{"casual_balance", "sick_balance", "annual_balance"}).
				AddRow(12, 10, -1))

		b, err := ledger.Get(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, balance.Balance{Casual: 12, Sick: 10, Annual: -1}, b)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		ledger, mock := setupLedger(t)
		mock.ExpectQuery(`FROM "employees"`).
			WillReturnRows(sqlmock.NewRows([]string{"casual_balance", "sick_balance", "annual_balance"}))

		_, err := ledger.Get(ctx, id)

		assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotFound)
	})
}

func TestLedger_Decrement(t *testing.T) {
	ctx := context.Background()
	id, src := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		ledger, mock := setupLedger(t)
		mock.ExpectExec(`UPDATE "employees" SET "sick_balance"=sick_balance - `).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "balance_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Decrement(ctx, id, balance.LeaveSick, 3, src)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative employee missing", func(t *testing.T) {
		ledger, mock := setupLedger(t)
		mock.ExpectExec(`UPDATE "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Decrement(ctx, id, balance.LeaveCasual, 1, src)

		assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		ledger, mock := setupLedger(t)

		err := ledger.Decrement(ctx, id, balance.LeaveType("unpaid"), 1, src)

		assert.ErrorIs(t, err, balanceerrors.ErrUnknownLeaveType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative non positive days", func(t *testing.T) {
		ledger, _ := setupLedger(t)

		err := ledger.Decrement(ctx, id, balance.LeaveCasual, 0, src)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidDays)
	})
}

func TestParseLeaveType(t *testing.T) {
	for _, v := range []string{"casual", "sick", "annual"} {
		lt, ok := balance.ParseLeaveType(v)
		assert.True(t, ok)
		assert.Equal(t, v, string(lt))
	}
	_, ok := balance.ParseLeaveType("Casual")
	assert.False(t, ok)
	assert.Equal(t, 0, balance.Balance{Casual: 4}.Of(balance.LeaveType("unpaid")))
}
