package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/leave"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (employee_id, start_date, end_date, leave_type, leave_day, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.EmployeeID, l.StartDate, l.EndDate, l.LeaveType, l.LeaveDay, l.Reason, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.start_date, l.end_date, l.leave_type, l.leave_day,
			   l.reason, l.status, l.created_at, l.updated_at, e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var l leave.Leave
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.LeaveType, &l.LeaveDay,
		&l.Reason, &l.Status, &l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return l, nil
}

// ListByStatus implements leave.Repository.
func (r *leaveRepository) ListByStatus(ctx context.Context, status leave.Status) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.start_date, l.end_date, l.leave_type, l.leave_day,
			   l.reason, l.status, l.created_at, l.updated_at, e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.status = $1
		ORDER BY l.created_at DESC
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows, true)
}

// ListByEmployee implements leave.Repository.
func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, leave_type, leave_day,
			   reason, status, created_at, updated_at
		FROM leaves
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows, false)
}

// UpdateStatus implements leave.Repository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}

	return r.GetByID(ctx, id)
}

func collectLeaves(rows pgx.Rows, withName bool) ([]leave.Leave, error) {
	var result []leave.Leave
	for rows.Next() {
		var l leave.Leave
		var err error
		if withName {
			err = rows.Scan(
				&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.LeaveType, &l.LeaveDay,
				&l.Reason, &l.Status, &l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
			)
		} else {
			err = rows.Scan(
				&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.LeaveType, &l.LeaveDay,
				&l.Reason, &l.Status, &l.CreatedAt, &l.UpdatedAt,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		result = append(result, l)
	}

	return result, rows.Err()
}
