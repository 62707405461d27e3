// Package repository contains the data access layer.  Repositories
// speak raw SQL against MySQL and translate database failures into
// sentinel errors so that handlers can map them onto HTTP statuses
// without inspecting driver error strings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as deleting an event that still has
// showtimes or booking more seats than a section has available.
// Handlers translate this into 409.
var ErrConflict = errors.New("conflict")
