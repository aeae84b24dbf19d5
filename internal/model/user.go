package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The json tags are omitted here because these structs are
// primarily used by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique, case-sensitive login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password; never the plaintext.
//	IsAdmin      – whether the account may mutate the catalog and use admin routes.
//	CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
}
