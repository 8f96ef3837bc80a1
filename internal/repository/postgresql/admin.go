package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/database"
)

type adminRepository struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) auth.AdminRepository {
	return &adminRepository{db: db}
}

// GetByUsername implements auth.AdminRepository.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	var a auth.Admin
	err := q.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Admin{}, auth.ErrAdminNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}

	return a, nil
}

// Create implements auth.AdminRepository.
func (r *adminRepository) Create(ctx context.Context, admin auth.Admin) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, admin.Username, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "admins_username_key") {
			return auth.Admin{}, auth.ErrUsernameExists
		}
		return auth.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// UpdatePassword implements auth.AdminRepository.
func (r *adminRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE admins
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return auth.ErrAdminNotFound
	}

	return nil
}
