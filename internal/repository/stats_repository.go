package repository

import (
	"context"
	"database/sql"
)

// StatsRepo serves the admin dashboard counters.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Stats holds the platform-wide row counts shown to administrators.
type Stats struct {
	UserCount   uint64 `json:"userCount"`
	StoreCount  uint64 `json:"storeCount"`
	RatingCount uint64 `json:"ratingCount"`
}

// Counts runs the three COUNT(*) queries. The counts are read
// independently, not in one snapshot; the dashboard tolerates that.
func (r *StatsRepo) Counts(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&s.UserCount); err != nil {
		return Stats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores").Scan(&s.StoreCount); err != nil {
		return Stats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM ratings").Scan(&s.RatingCount); err != nil {
		return Stats{}, err
	}
	return s, nil
}
