package model

import (
	"encoding/json"
	"time"
)

// Student is a student record owned by a single user.  Grades are kept in
// a single TEXT column as a JSON array; EncodeGrades/DecodeGrades are the
// only code paths that touch the serialized form, so ordering and
// duplicate entries round-trip exactly.
type Student struct {
	ID        uint64    // students.id
	UserID    uint64    // students.user_id
	Name      string    // students.name
	Age       int       // students.age
	Email     string    // students.email (unique)
	Grades    string    // students.grades (JSON array string)
	CreatedAt time.Time // students.created_at
	UpdatedAt time.Time // students.updated_at
}

// StudentPatch carries a partial update; nil fields are left untouched.
type StudentPatch struct {
	Name   *string
	Age    *int
	Email  *string
	Grades *[]string
}

// EncodeGrades serializes a grade list for the grades column.  A nil list
// encodes as an empty array so the column never holds invalid JSON.
func EncodeGrades(grades []string) (string, error) {
	if grades == nil {
		grades = []string{}
	}
	b, err := json.Marshal(grades)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeGrades parses the grades column back into a list.  Empty or
// unparsable column values decode to an empty list rather than an error;
// rows written before the column was populated hold an empty string.
func DecodeGrades(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var grades []string
	if err := json.Unmarshal([]byte(raw), &grades); err != nil {
		return []string{}
	}
	if grades == nil {
		return []string{}
	}
	return grades
}
