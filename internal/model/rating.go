package model

import "time"

// Rating is a single user's score for a single store. The ratings
// table carries unique(user_id, store_id), so at most one row exists
// per pair; resubmissions overwrite Score in place.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who submitted the rating.
//  StoreID   – store being rated.
//  Score     – integer in [1,5].
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (bumped on resubmission).
type Rating struct {
	ID        uint64    // ratings.id
	UserID    uint64    // ratings.user_id
	StoreID   uint64    // ratings.store_id
	Score     uint8     // ratings.rating
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
