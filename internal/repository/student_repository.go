package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recordhub/internal/model"
)

// StudentRepo encapsulates all database queries related to students.
// Grades travel through this layer as the serialized JSON string held in
// the grades column; handlers decode them for responses.
type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

const studentColumns = "id, user_id, name, age, email, grades, created_at, updated_at"

func scanStudent(scan func(dest ...any) error) (*model.Student, error) {
	var s model.Student
	err := scan(&s.ID, &s.UserID, &s.Name, &s.Age, &s.Email, &s.Grades, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a student and populates its ID and timestamps.  The
// students table has a unique email constraint; violations surface as
// ErrDuplicate.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO students (user_id, name, age, email, grades) VALUES (?,?,?,?,?)",
		s.UserID, s.Name, s.Age, s.Email, s.Grades)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM students WHERE id=?", s.ID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a student by id regardless of owner.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (*model.Student, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE id=? LIMIT 1", id)
	return scanStudent(row.Scan)
}

// ListByOwner returns the owner's students ordered by id with pagination.
func (r *StudentRepo) ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Student, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE user_id=? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		s, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Update applies a patch to a student, field by field.  The grades list is
// re-encoded before writing so the column always holds a JSON array.
func (r *StudentRepo) Update(ctx context.Context, s *model.Student, p model.StudentPatch) error {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Age != nil {
		s.Age = *p.Age
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Grades != nil {
		encoded, err := model.EncodeGrades(*p.Grades)
		if err != nil {
			return err
		}
		s.Grades = encoded
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE students SET name=?, age=?, email=?, grades=? WHERE id=?",
		s.Name, s.Age, s.Email, s.Grades, s.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM students WHERE id=?", s.ID).Scan(&s.UpdatedAt)
}

// Delete removes a student by id.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM students WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
