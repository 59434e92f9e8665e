// AngelaMos | 2026
// repository.go

package principal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Principal) error
	GetByEmail(ctx context.Context, role Role, email string) (*Principal, error)
	ExistsByEmail(ctx context.Context, role Role, email string) (bool, error)
	UpdatePassword(ctx context.Context, role Role, id int64, passwordHash string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Principal) error {
	table, err := p.Role.table()
	if err != nil {
		return fmt.Errorf("create principal: %w", core.ErrInvalidInput)
	}

	//nolint:gosec // G201: table name comes from a fixed whitelist
	query := fmt.Sprintf(`
		INSERT INTO %s (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, table)

	row := struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}{}

	err = r.db.GetContext(ctx, &row, query,
		p.Username,
		p.Email,
		p.PasswordHash,
		p.Role,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create %s: %w", table, core.ErrDuplicateKey)
		}
		return fmt.Errorf("create %s: %w", table, err)
	}

	p.ID = row.ID
	p.CreatedAt = row.CreatedAt.Time

	return nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	role Role,
	email string,
) (*Principal, error) {
	table, err := role.table()
	if err != nil {
		return nil, fmt.Errorf("get principal by email: %w", core.ErrInvalidInput)
	}

	//nolint:gosec // G201: table name comes from a fixed whitelist
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, role, created_at
		FROM %s
		WHERE email = $1`, table)

	var p Principal
	err = r.db.GetContext(ctx, &p, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s by email: %w", table, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s by email: %w", table, err)
	}

	// The table, not the stored column, decides the role.
	p.Role = role

	return &p, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	role Role,
	email string,
) (bool, error) {
	table, err := role.table()
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", core.ErrInvalidInput)
	}

	//nolint:gosec // G201: table name comes from a fixed whitelist
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE email = $1)`, table)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check %s email exists: %w", table, err)
	}

	return exists, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	role Role,
	id int64,
	passwordHash string,
) error {
	table, err := role.table()
	if err != nil {
		return fmt.Errorf("update password: %w", core.ErrInvalidInput)
	}

	//nolint:gosec // G201: table name comes from a fixed whitelist
	query := fmt.Sprintf(`UPDATE %s SET password_hash = $2 WHERE id = $1`, table)

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update %s password: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s password: %w", table, err)
	}

	if rows == 0 {
		return fmt.Errorf("update %s password: %w", table, core.ErrNotFound)
	}

	return nil
}
