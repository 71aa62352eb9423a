package model

import "time"

// User represents a salon customer or administrator as stored in the
// `users` table. Customers are created on their first phone-number
// login and are never deleted. The json tags are omitted here because
// these structs are used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Name          – display name supplied at login.
//  Phone         – unique 10-digit phone number, the login identity.
//  Role          – CUSTOMER or ADMIN.
//  PasswordHash  – bcrypt hash, set only for ADMIN accounts (nullable).
//  LoyaltyPoints – current loyalty balance; every change is mirrored
//                  by a row in loyalty_transactions.
//  IsActive      – whether the account is active.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64    // users.id
	Name          string    // users.name
	Phone         string    // users.phone
	Role          string    // users.role
	PasswordHash  *string   // users.password_hash (nullable; ADMIN only)
	LoyaltyPoints int64     // users.loyalty_points
	IsActive      bool      // users.is_active
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its SHA-256
// hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
