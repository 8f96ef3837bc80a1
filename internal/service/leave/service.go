package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	leaves    leave.Repository
	employees employee.Repository
}

func NewLeaveService(leaveRepo leave.Repository, employeeRepo employee.Repository) leave.Service {
	return &LeaveServiceImpl{
		leaves:    leaveRepo,
		employees: employeeRepo,
	}
}

// Apply implements leave.Service. The subject is resolved through the
// employee directory before the application is stored.
func (s *LeaveServiceImpl) Apply(ctx context.Context, subject string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := s.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	created, err := s.leaves.Create(ctx, leave.Leave{
		EmployeeID: emp.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		LeaveType:  req.LeaveType,
		LeaveDay:   req.LeaveDay,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	created.EmployeeName = &emp.FullName
	return mapLeaveToResponse(created), nil
}

// ListForSubject implements leave.Service.
func (s *LeaveServiceImpl) ListForSubject(ctx context.Context, subject string) ([]leave.LeaveResponse, error) {
	emp, err := s.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}

	records, err := s.leaves.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, record := range records {
		record.EmployeeName = &emp.FullName
		responses = append(responses, mapLeaveToResponse(record))
	}
	return responses, nil
}

// ListByStatus implements leave.Service.
func (s *LeaveServiceImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveResponse, error) {
	switch status {
	case leave.StatusPending, leave.StatusApproved, leave.StatusRejected:
	default:
		return nil, leave.ErrInvalidStatus
	}

	records, err := s.leaves.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapLeaveToResponse(record))
	}
	return responses, nil
}

// UpdateStatus implements leave.Service.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.leaves.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.LeaveResponse{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	return mapLeaveToResponse(updated), nil
}

func mapLeaveToResponse(record leave.Leave) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		StartDate:    record.StartDate,
		EndDate:      record.EndDate,
		LeaveType:    record.LeaveType,
		LeaveDay:     record.LeaveDay,
		Reason:       record.Reason,
		Status:       record.Status,
	}
}
