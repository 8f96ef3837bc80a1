package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.Repository {
	return &punchRepository{db: db}
}

const punchColumns = `
	id, employee_id, date, time_of_punch_in, time_of_punch_out,
	punch_in_image_url, punch_out_image_url, work_report, reminder_date,
	worked_minutes, created_at, updated_at
`

func scanPunch(row pgx.Row) (punch.PunchActivity, error) {
	var a punch.PunchActivity
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.TimeOfPunchIn, &a.TimeOfPunchOut,
		&a.PunchInImageURL, &a.PunchOutImageURL, &a.WorkReport, &a.ReminderDate,
		&a.WorkedMinutes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements punch.Repository.
func (r *punchRepository) Create(ctx context.Context, activity punch.PunchActivity) (punch.PunchActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_activities (
			employee_id, date, time_of_punch_in,
			punch_in_image_url, work_report, reminder_date
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		activity.EmployeeID,
		activity.Date,
		activity.TimeOfPunchIn,
		activity.PunchInImageURL,
		activity.WorkReport,
		activity.ReminderDate,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)

	if err != nil {
		return punch.PunchActivity{}, fmt.Errorf("failed to create punch activity: %w", err)
	}

	return activity, nil
}

// FindOpen implements punch.Repository. A nil result means no open cycle.
func (r *punchRepository) FindOpen(ctx context.Context, employeeID string) (*punch.PunchActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punch_activities
		WHERE employee_id = $1
		  AND time_of_punch_out IS NULL
		ORDER BY time_of_punch_in DESC
		LIMIT 1
	`

	activity, err := scanPunch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open punch cycle: %w", err)
	}

	return &activity, nil
}

// Close implements punch.Repository. The WHERE clause demands the row is
// still open, so a lost race against another punch-out affects zero rows and
// reports ErrPunchActivityNotFound instead of double-closing the cycle.
func (r *punchRepository) Close(ctx context.Context, activity punch.PunchActivity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punch_activities
		SET time_of_punch_out = $2,
			punch_out_image_url = $3,
			work_report = $4,
			reminder_date = $5,
			worked_minutes = $6,
			updated_at = NOW()
		WHERE id = $1
		  AND time_of_punch_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		activity.ID,
		activity.TimeOfPunchOut,
		activity.PunchOutImageURL,
		activity.WorkReport,
		activity.ReminderDate,
		activity.WorkedMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to close punch activity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return punch.ErrPunchActivityNotFound
	}

	return nil
}

// Update implements punch.Repository. Administrative correction; no open-cycle
// condition applies.
func (r *punchRepository) Update(ctx context.Context, activity punch.PunchActivity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punch_activities
		SET date = $2,
			time_of_punch_in = $3,
			time_of_punch_out = $4,
			punch_in_image_url = $5,
			punch_out_image_url = $6,
			work_report = $7,
			reminder_date = $8,
			worked_minutes = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		activity.ID,
		activity.Date,
		activity.TimeOfPunchIn,
		activity.TimeOfPunchOut,
		activity.PunchInImageURL,
		activity.PunchOutImageURL,
		activity.WorkReport,
		activity.ReminderDate,
		activity.WorkedMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update punch activity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return punch.ErrPunchActivityNotFound
	}

	return nil
}

// GetByID implements punch.Repository. The employee display name is joined in
// so the query service rarely needs a directory lookup.
func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.PunchActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			p.id, p.employee_id, p.date, p.time_of_punch_in, p.time_of_punch_out,
			p.punch_in_image_url, p.punch_out_image_url, p.work_report, p.reminder_date,
			p.worked_minutes, p.created_at, p.updated_at,
			e.full_name AS employee_name
		FROM punch_activities p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var a punch.PunchActivity
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.TimeOfPunchIn, &a.TimeOfPunchOut,
		&a.PunchInImageURL, &a.PunchOutImageURL, &a.WorkReport, &a.ReminderDate,
		&a.WorkedMinutes, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.PunchActivity{}, punch.ErrPunchActivityNotFound
		}
		return punch.PunchActivity{}, fmt.Errorf("failed to get punch activity: %w", err)
	}

	return a, nil
}

// List implements punch.Repository.
func (r *punchRepository) List(ctx context.Context) ([]punch.PunchActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			p.id, p.employee_id, p.date, p.time_of_punch_in, p.time_of_punch_out,
			p.punch_in_image_url, p.punch_out_image_url, p.work_report, p.reminder_date,
			p.worked_minutes, p.created_at, p.updated_at,
			e.full_name AS employee_name
		FROM punch_activities p
		LEFT JOIN employees e ON e.id = p.employee_id
		ORDER BY p.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch activities: %w", err)
	}
	defer rows.Close()

	var result []punch.PunchActivity
	for rows.Next() {
		var a punch.PunchActivity
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.TimeOfPunchIn, &a.TimeOfPunchOut,
			&a.PunchInImageURL, &a.PunchOutImageURL, &a.WorkReport, &a.ReminderDate,
			&a.WorkedMinutes, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch activity: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

// ListByEmployee implements punch.Repository.
func (r *punchRepository) ListByEmployee(ctx context.Context, employeeID string) ([]punch.PunchActivity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punch_activities
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch activities: %w", err)
	}
	defer rows.Close()

	var result []punch.PunchActivity
	for rows.Next() {
		a, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch activity: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}
