package model

import "time"

// Staff roles. ADMIN manages vehicles/people and every admin screen;
// GUARD is the kiosk operator account used at the gate.
const (
	RoleAdmin = "ADMIN"
	RoleGuard = "GUARD"
)

// User is a staff account in the `users` table. Only the bcrypt hash of
// the password is stored.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email, unique, lower-cased
	PasswordHash string    // users.password_hash
	DisplayName  string    // users.display_name
	Role         string    // users.role (ADMIN | GUARD)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models one row of `refresh_tokens`. The raw token value is
// returned to the client once; only its SHA-256 hash is persisted so a
// leaked table cannot be replayed. Password-reset tokens reuse the same
// shape in `reset_tokens`.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash (sha256 hex)
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at, nil while active
	CreatedAt time.Time  // refresh_tokens.created_at
}
