// This file implements the rating ledger: the set of (user, store)
// rating facts and the derived per-store aggregate. The ledger's two
// invariants live here. First, unique(user_id, store_id) plus an
// atomic upsert guarantees at most one rating row per pair no matter
// how submissions interleave. Second, every successful write
// recomputes stores.overall_rating inside the same transaction, so a
// failed recompute rolls the rating write back and the committed
// aggregate always reflects a consistent read of the ledger. Two
// users rating the same store concurrently serialize on the store row
// lock taken below; the last commit's recompute wins.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

// RatingRepo provides writes to the ratings table and the aggregate
// reads used by the owner dashboard.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert records score for (userID, storeID), inserting on first
// submission and overwriting on resubmission, then recomputes the
// store's overall rating. The new aggregate is returned. Unknown
// stores yield ErrStoreNotFound before anything is written; unknown
// users surface as ErrUserNotFound via the FK on ratings.user_id.
func (r *RatingRepo) Upsert(ctx context.Context, userID, storeID uint64, score uint8) (avg float64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	// Named returns so a commit failure reaches the caller; a rating
	// that did not commit must never be reported as a success.
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			avg, err = 0, cerr
		}
	}()

	// Lock the store row for the duration of the transaction. This
	// serializes concurrent recomputes for the same store so the
	// aggregate written last reflects all committed rows.
	var locked uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT id FROM stores WHERE id = ? FOR UPDATE", storeID).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrStoreNotFound
		}
		return 0, err
	}

	// Atomic upsert keyed on unique(user_id, store_id).
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (user_id, store_id, rating) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE rating = VALUES(rating), updated_at = CURRENT_TIMESTAMP`,
		userID, storeID, score); err != nil {
		// 1452 = ER_NO_REFERENCED_ROW_2: the user id has no row.
		if containsFKViolation(err) {
			err = ErrUserNotFound
		}
		return 0, err
	}

	// Recompute the mean over all current rows for this store,
	// rounded to one decimal, and persist it onto the store record.
	if err = tx.QueryRowContext(ctx,
		"SELECT ROUND(AVG(rating), 1) FROM ratings WHERE store_id = ?", storeID).Scan(&avg); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE stores SET overall_rating = ? WHERE id = ?", avg, storeID); err != nil {
		return 0, err
	}
	return avg, nil
}

// StoreReview is one reviewer's entry for a store as shown on the
// owner dashboard: who rated and what they gave.
type StoreReview struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Score uint8  `json:"rating"`
}

// ListForStore returns every reviewer of a store joined with their
// user record, plus the store's persisted aggregate. The aggregate is
// nil when the store has no ratings.
func (r *RatingRepo) ListForStore(ctx context.Context, storeID uint64) ([]StoreReview, *float64, error) {
	var overall sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		"SELECT overall_rating FROM stores WHERE id = ?", storeID).Scan(&overall); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrStoreNotFound
		}
		return nil, nil, err
	}

	const q = `SELECT u.name, u.email, r.rating
	           FROM ratings r
	           JOIN users u ON u.id = r.user_id
	           WHERE r.store_id = ?
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []StoreReview
	for rows.Next() {
		var rev StoreReview
		if err := rows.Scan(&rev.Name, &rev.Email, &rev.Score); err != nil {
			return nil, nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var avg *float64
	if overall.Valid {
		v := overall.Float64
		avg = &v
	}
	return out, avg, nil
}

// GetForUser returns the rating a user gave a store, or
// sql.ErrNoRows when the pair has no row.
func (r *RatingRepo) GetForUser(ctx context.Context, userID, storeID uint64) (model.Rating, error) {
	const q = `SELECT id, user_id, store_id, rating, created_at, updated_at
	           FROM ratings WHERE user_id = ? AND store_id = ? LIMIT 1`
	var m model.Rating
	err := r.db.QueryRowContext(ctx, q, userID, storeID).
		Scan(&m.ID, &m.UserID, &m.StoreID, &m.Score, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// containsFKViolation reports whether err is a MySQL foreign key
// failure (error 1452), following the same string matching used for
// duplicate key detection in the user repository.
func containsFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
