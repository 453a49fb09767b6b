// Package repository implements MySQL persistence for vehicles, people,
// access records and staff accounts. Sentinel errors defined here let
// handlers map failures to HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a row lookup matches nothing. Handlers
// translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a staff account registration collides
// with an existing email. Handlers translate it into a 409 response.
var ErrEmailExists = errors.New("email already exists")
