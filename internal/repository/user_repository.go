package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/utils"
)

// UserRepo encapsulates all database queries against the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts a user, returning its ID.
// The email is normalized to lower case before insertion so the
// unique constraint also catches case-variant duplicates.
func (r *UserRepo) Create(ctx context.Context, name, email, address, password string, role model.Role, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, address, password_hash, role) VALUES (?,?,?,?,?)",
		name, email, address, hash, role.String())
	if err != nil {
		// 1062 = ER_DUP_ENTRY on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email. sql.ErrNoRows is
// passed through so login can map it to a uniform credential error.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,name,email,address,password_hash,role,store_id,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id, returning ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.scanOne(ctx,
		"SELECT id,name,email,address,password_hash,role,store_id,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var (
		u       model.User
		role    string
		storeID sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.PasswordHash, &role, &storeID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	if storeID.Valid {
		v := uint64(storeID.Int64)
		u.StoreID = &v
	}
	return u, nil
}

// List returns all users ordered by id. Password hashes are selected
// because the struct carries them, but handlers must never serialize
// that field.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,address,password_hash,role,store_id,created_at,updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u       model.User
			role    string
			storeID sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.PasswordHash, &role, &storeID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = model.Role(role)
		if storeID.Valid {
			v := uint64(storeID.Int64)
			u.StoreID = &v
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole overwrites a user's role. Callers verify the user
// exists beforehand; rows-affected is not checked because MySQL
// reports zero changed rows when the role is already the target.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role model.Role) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", role.String(), id)
	return err
}

// AssignStore sets or clears (nil) a user's store assignment.
func (r *UserRepo) AssignStore(ctx context.Context, id uint64, storeID *uint64) error {
	var arg interface{}
	if storeID != nil {
		arg = *storeID
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET store_id=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", arg, id)
	return err
}

// UpdatePassword overwrites a user's password hash. The plain
// password is hashed here so handlers never touch bcrypt directly.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", hash, id)
	return err
}
