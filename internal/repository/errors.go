// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrUserNotFound is returned when a user id or email does not match
// any row. Handlers translate this into an HTTP 404 response.
var ErrUserNotFound = errors.New("user not found")

// ErrStoreNotFound is returned when a store id does not match any
// row. Handlers translate this into an HTTP 404 response.
var ErrStoreNotFound = errors.New("store not found")

// ErrEmailExists is returned when an insert collides with the unique
// email constraint. Handlers translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")
