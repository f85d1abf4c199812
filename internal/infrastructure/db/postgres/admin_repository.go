package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

const selectIsAdmin = `SELECT is_admin FROM users WHERE id = $1`

// DBTX is the subset of database/sql used by the repository. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
}

// AdminRepository implements ports.AdminLookup against the users table.
type AdminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// IsAdmin returns the is_admin column for userID. The column may be stored as
// a boolean or an integer.
func (r *AdminRepository) IsAdmin(ctx context.Context, userID string) (bool, bool, error) {
	var raw any
	err := r.db.QueryRowContext(ctx, selectIsAdmin, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, domain.StoreError("postgres admin lookup", err)
	}

	v, err := toBool(raw)
	if err != nil {
		return false, false, domain.StoreError("postgres admin lookup", err)
	}
	return v, true, nil
}

func (r *AdminRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return domain.StoreError("postgres ping", err)
	}
	return nil
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case int32:
		return v != 0, nil
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	default:
		return false, fmt.Errorf("unsupported is_admin type %T", raw)
	}
}

func parseBool(s string) (bool, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parse is_admin %q: %w", s, err)
	}
	return b, nil
}
