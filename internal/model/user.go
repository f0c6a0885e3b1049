package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – full name (20–60 characters, enforced at the boundary).
//  Email        – unique email address.
//  Address      – postal address (up to 400 characters).
//  PasswordHash – bcrypt hashed password, never exposed.
//  Role         – closed role value (USER, OWNER or ADMIN).
//  StoreID      – assigned store for OWNER accounts; nil otherwise.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Address      string    // users.address
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	StoreID      *uint64   // users.store_id (nullable)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
