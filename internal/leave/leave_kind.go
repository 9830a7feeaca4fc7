package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/prakhar-sonii/employee-management-system/internal/balance"
	leaveerrors "github.com/prakhar-sonii/employee-management-system/internal/leave/errors"
	"github.com/prakhar-sonii/employee-management-system/internal/shared/apperror"
	"github.com/prakhar-sonii/employee-management-system/internal/workday"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Kind plugs leave requests into the workflow engine: it prices a request
// in working days and deducts them from the ledger on approval.
type Kind struct {
	ledger balance.Ledger
}

func NewKind(ledger balance.Ledger) *Kind {
	return &Kind{ledger: ledger}
}

func (k *Kind) Name() string { return "leave" }

func (k *Kind) New() *LeaveRequest { return &LeaveRequest{} }

// Build validates the application and computes Days. The balance check is
// advisory: approvals of other pending requests may still overdraw it.
func (k *Kind) Build(ctx context.Context, ownerID uuid.UUID, req ApplyLeaveRequest) (*LeaveRequest, error) {
	switch {
	case strings.TrimSpace(req.LeaveType) == "":
		return nil, apperror.RequiredField("leave_type")
	case strings.TrimSpace(req.StartDate) == "":
		return nil, apperror.RequiredField("start_date")
	case strings.TrimSpace(req.EndDate) == "":
		return nil, apperror.RequiredField("end_date")
	case strings.TrimSpace(req.Reason) == "":
		return nil, apperror.RequiredField("reason")
	}

	leaveType, ok := balance.ParseLeaveType(req.LeaveType)
	if !ok {
		return nil, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate.After(endDate) {
		return nil, leaveerrors.ErrInvalidDateRange
	}

	days := workday.Count(startDate, endDate)
	if days == 0 {
		return nil, leaveerrors.ErrNoWorkingDays
	}

	current, err := k.ledger.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if current.Of(leaveType) < days {
		return nil, leaveerrors.ErrInsufficientBalance
	}

	return &LeaveRequest{
		LeaveType: leaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      days,
		Reason:    strings.TrimSpace(req.Reason),
	}, nil
}

func (k *Kind) AfterApprove(ctx context.Context, tx *sql.Tx, rec *LeaveRequest) error {
	return k.ledger.WithTx(tx).Decrement(ctx, rec.EmployeeID, rec.LeaveType, rec.Days, rec.ID)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
