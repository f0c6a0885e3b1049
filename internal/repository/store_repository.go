// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for the stores
// catalog. The derived overall_rating column is written exclusively by
// RatingRepo; StoreRepo only reads it.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

// StoreRepo encapsulates all database queries related to stores. It
// depends on a sql.DB connection which is configured at startup.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at
// startup.
func NewStoreRepo(db *sql.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

// Create inserts a new store. On success the store's ID field is
// populated with the auto-generated value and a follow-up SELECT
// fills the default timestamp columns.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	const qInsert = "INSERT INTO stores (name, address) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.Name, s.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT name, address, created_at, updated_at FROM stores WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a store by its ID. It returns ErrStoreNotFound if
// no row is found.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	const q = "SELECT id, name, address, overall_rating, created_at, updated_at FROM stores WHERE id = ?"
	var (
		s      model.Store
		rating sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Address, &rating, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	if rating.Valid {
		v := rating.Float64
		s.OverallRating = &v
	}
	return &s, nil
}

// ListAll returns all stores ordered by id. The nullable aggregate
// stays nil for unrated stores so the API can report "not rated yet"
// instead of a fake zero.
func (r *StoreRepo) ListAll(ctx context.Context) ([]*model.Store, error) {
	const q = "SELECT id, name, address, overall_rating FROM stores ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Store
	for rows.Next() {
		s := new(model.Store)
		var rating sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &rating); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := rating.Float64
			s.OverallRating = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StoreWithUserScore is a store listing entry annotated with the
// requesting user's own score, nil when that user has not rated the
// store yet.
type StoreWithUserScore struct {
	Store     model.Store
	UserScore *uint8
}

// ListWithUserScores returns all stores LEFT JOINed against the given
// user's rating rows, so normal users see their own score alongside
// each store in a single query.
func (r *StoreRepo) ListWithUserScores(ctx context.Context, userID uint64) ([]StoreWithUserScore, error) {
	const q = `SELECT s.id, s.name, s.address, s.overall_rating, r.rating
	           FROM stores s
	           LEFT JOIN ratings r ON r.store_id = s.id AND r.user_id = ?
	           ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoreWithUserScore
	for rows.Next() {
		var (
			e       StoreWithUserScore
			overall sql.NullFloat64
			score   sql.NullInt64
		)
		if err := rows.Scan(&e.Store.ID, &e.Store.Name, &e.Store.Address, &overall, &score); err != nil {
			return nil, err
		}
		if overall.Valid {
			v := overall.Float64
			e.Store.OverallRating = &v
		}
		if score.Valid {
			v := uint8(score.Int64)
			e.UserScore = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInfo updates a store's name and address. It returns
// ErrStoreNotFound when the id does not exist.
func (r *StoreRepo) UpdateInfo(ctx context.Context, id uint64, name, address string) error {
	var exists uint64
	if err := r.db.QueryRowContext(ctx, "SELECT id FROM stores WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStoreNotFound
		}
		return err
	}
	const q = `UPDATE stores
	           SET name = ?, address = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, name, address, id)
	return err
}

// DeleteByID removes a store together with its dependent state: all
// rating rows for the store and any owner assignments pointing at it.
// The deletion occurs within a transaction to maintain integrity. If
// the store does not exist, ErrStoreNotFound is returned.
func (r *StoreRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Named return so a failed commit of the cascade surfaces instead
	// of reporting a deletion that never happened.
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM stores WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrStoreNotFound
		}
		return err
	}
	// Cascade: rating rows first, then owner assignments, then the store.
	if _, err = tx.ExecContext(ctx, "DELETE FROM ratings WHERE store_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "UPDATE users SET store_id = NULL WHERE store_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM stores WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
