package punch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
)

// QueryServiceImpl is the read side: projections over the punch repository
// decorated with employee display names. It never mutates records.
type QueryServiceImpl struct {
	punchRepo punch.Repository
	employees employee.Repository
}

func NewQueryService(punchRepo punch.Repository, employeeRepo employee.Repository) punch.QueryService {
	return &QueryServiceImpl{
		punchRepo: punchRepo,
		employees: employeeRepo,
	}
}

// ListAll implements punch.QueryService.
func (q *QueryServiceImpl) ListAll(ctx context.Context) (punch.ListPunchActivityResponse, error) {
	activities, err := q.punchRepo.List(ctx)
	if err != nil {
		return punch.ListPunchActivityResponse{}, fmt.Errorf("failed to list punch activities: %w", err)
	}

	responses := make([]punch.PunchActivityResponse, 0, len(activities))
	names := make(map[string]*string)
	for _, activity := range activities {
		if activity.EmployeeName == nil {
			activity.EmployeeName = q.lookupName(ctx, names, activity.EmployeeID)
		}
		responses = append(responses, mapActivityToResponse(activity))
	}

	return punch.ListPunchActivityResponse{
		TotalCount: len(responses),
		Activities: responses,
	}, nil
}

// GetByID implements punch.QueryService. Absence is reported as
// ErrPunchActivityNotFound so the boundary can answer 404 instead of 500.
func (q *QueryServiceImpl) GetByID(ctx context.Context, id string) (punch.PunchActivityResponse, error) {
	activity, err := q.punchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, punch.ErrPunchActivityNotFound) {
			return punch.PunchActivityResponse{}, punch.ErrPunchActivityNotFound
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to get punch activity: %w", err)
	}

	if activity.EmployeeName == nil {
		activity.EmployeeName = q.lookupName(ctx, nil, activity.EmployeeID)
	}

	return mapActivityToResponse(activity), nil
}

// ListForSubject implements punch.QueryService.
func (q *QueryServiceImpl) ListForSubject(ctx context.Context, subject string) (punch.ListPunchActivityResponse, error) {
	emp, err := q.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return punch.ListPunchActivityResponse{}, employee.ErrEmployeeNotFound
		}
		return punch.ListPunchActivityResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	activities, err := q.punchRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return punch.ListPunchActivityResponse{}, fmt.Errorf("failed to list punch activities: %w", err)
	}

	responses := make([]punch.PunchActivityResponse, 0, len(activities))
	for _, activity := range activities {
		activity.EmployeeName = &emp.FullName
		responses = append(responses, mapActivityToResponse(activity))
	}

	return punch.ListPunchActivityResponse{
		TotalCount: len(responses),
		Activities: responses,
	}, nil
}

// lookupName resolves an employee display name, tolerating directory misses:
// a record must still be listable when its employee was removed.
func (q *QueryServiceImpl) lookupName(ctx context.Context, cache map[string]*string, employeeID string) *string {
	if cache != nil {
		if name, ok := cache[employeeID]; ok {
			return name
		}
	}

	var name *string
	if emp, err := q.employees.GetByID(ctx, employeeID); err == nil {
		name = &emp.FullName
	}

	if cache != nil {
		cache[employeeID] = name
	}
	return name
}
