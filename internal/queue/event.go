// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a rating upsert commits. It
// carries enough information for downstream consumers to audit or
// trigger analytics without querying the primary database. The
// aggregate included is the one computed inside the submitting
// transaction; later events for the same store supersede it.
type RatingSubmittedEvent struct {
	UserID        uint64  `json:"user_id"`
	StoreID       uint64  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	Score         uint8   `json:"score"`
	OverallRating float64 `json:"overall_rating"`
	SubmittedAt   string  `json:"submitted_at"`
}
