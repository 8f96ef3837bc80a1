package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/enquiry"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/database"
)

type enquiryRepository struct {
	db *database.DB
}

func NewEnquiryRepository(db *database.DB) enquiry.Repository {
	return &enquiryRepository{db: db}
}

// Create implements enquiry.Repository.
func (r *enquiryRepository) Create(ctx context.Context, e enquiry.Enquiry) (enquiry.Enquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO enquiries (employee_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, e.EmployeeID, e.Title, e.Message).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return enquiry.Enquiry{}, fmt.Errorf("failed to create enquiry: %w", err)
	}

	return e, nil
}

// List implements enquiry.Repository.
func (r *enquiryRepository) List(ctx context.Context) ([]enquiry.Enquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT n.id, n.employee_id, n.title, n.message, n.created_at, n.updated_at,
			   e.full_name AS employee_name
		FROM enquiries n
		LEFT JOIN employees e ON e.id = n.employee_id
		ORDER BY n.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	return collectEnquiries(rows, true)
}

// ListByEmployee implements enquiry.Repository.
func (r *enquiryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]enquiry.Enquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, title, message, created_at, updated_at
		FROM enquiries
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	return collectEnquiries(rows, false)
}

// Delete implements enquiry.Repository.
func (r *enquiryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return enquiry.ErrEnquiryNotFound
	}

	return nil
}

func collectEnquiries(rows pgx.Rows, withName bool) ([]enquiry.Enquiry, error) {
	var result []enquiry.Enquiry
	for rows.Next() {
		var e enquiry.Enquiry
		var err error
		if withName {
			err = rows.Scan(&e.ID, &e.EmployeeID, &e.Title, &e.Message, &e.CreatedAt, &e.UpdatedAt, &e.EmployeeName)
		} else {
			err = rows.Scan(&e.ID, &e.EmployeeID, &e.Title, &e.Message, &e.CreatedAt, &e.UpdatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		result = append(result, e)
	}

	return result, rows.Err()
}
