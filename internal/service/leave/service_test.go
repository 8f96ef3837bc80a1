package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/leave"
	"github.com/rajasreeit/crm-backend-go/internal/repository/memory"
)

func newTestLeaveService(t *testing.T) (leave.Service, employee.Employee) {
	t.Helper()

	leaveRepo := memory.NewLeaveRepository()
	employeeRepo := memory.NewEmployeeRepository()

	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)

	return NewLeaveService(leaveRepo, employeeRepo), emp
}

func TestApplyStartsPending(t *testing.T) {
	ctx := context.Background()
	svc, emp := newTestLeaveService(t)

	resp, err := svc.Apply(ctx, emp.MobileNumber, leave.ApplyLeaveRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		LeaveType: "CASUAL",
		LeaveDay:  "FULL_DAY",
		Reason:    "Family function",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, emp.ID, resp.EmployeeID)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Asha Rao", *resp.EmployeeName)
}

func TestApplyRejectsInvertedDates(t *testing.T) {
	ctx := context.Background()
	svc, emp := newTestLeaveService(t)

	_, err := svc.Apply(ctx, emp.MobileNumber, leave.ApplyLeaveRequest{
		StartDate: "2025-04-03",
		EndDate:   "2025-04-01",
		LeaveType: "CASUAL",
		Reason:    "Family function",
	})
	assert.Error(t, err)
}

func TestApplyUnknownSubject(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	_, err := svc.Apply(ctx, "0000000000", leave.ApplyLeaveRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		LeaveType: "CASUAL",
		Reason:    "Family function",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateStatusApproves(t *testing.T) {
	ctx := context.Background()
	svc, emp := newTestLeaveService(t)

	created, err := svc.Apply(ctx, emp.MobileNumber, leave.ApplyLeaveRequest{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		LeaveType: "CASUAL",
		Reason:    "Family function",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, leave.UpdateStatusRequest{
		ID:     created.ID,
		Status: leave.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, updated.Status)

	mine, err := svc.ListForSubject(ctx, emp.MobileNumber)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, leave.StatusApproved, mine[0].Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	_, err := svc.UpdateStatus(ctx, leave.UpdateStatusRequest{
		ID:     "missing",
		Status: leave.StatusRejected,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLeaveService(t)

	_, err := svc.ListByStatus(ctx, leave.Status("MAYBE"))
	assert.ErrorIs(t, err, leave.ErrInvalidStatus)
}
