package model

import "time"

// Contact is an address-book entry owned by a single user.  Only the
// owning user may read or mutate it.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the contact.
//	Name      – contact display name.
//	Email     – optional email address.
//	Phone     – optional phone number.
//	Address   – optional postal address.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Contact struct {
	ID        uint64    // contacts.id
	UserID    uint64    // contacts.user_id
	Name      string    // contacts.name
	Email     *string   // contacts.email (nullable)
	Phone     *string   // contacts.phone (nullable)
	Address   *string   // contacts.address (nullable)
	CreatedAt time.Time // contacts.created_at
	UpdatedAt time.Time // contacts.updated_at
}

// ContactPatch carries a partial update.  Nil fields are left untouched;
// the repository applies the merge field by field.
type ContactPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}
