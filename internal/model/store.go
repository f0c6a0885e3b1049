package model

import "time"

// Store represents a storefront that users can rate. The
// OverallRating field is derived from the ratings table and is nil
// until the first rating lands; a nil aggregate means "no ratings
// yet" and must not be collapsed to zero anywhere in the system.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – store name.
//  Address       – store address.
//  OverallRating – mean of all ratings rounded to one decimal, nil
//                  when the store has no ratings.
//  CreatedAt     – timestamp when the store was created.
//  UpdatedAt     – timestamp of last update.
type Store struct {
	ID            uint64    // stores.id
	Name          string    // stores.name
	Address       string    // stores.address
	OverallRating *float64  // stores.overall_rating (nullable)
	CreatedAt     time.Time // stores.created_at
	UpdatedAt     time.Time // stores.updated_at
}
